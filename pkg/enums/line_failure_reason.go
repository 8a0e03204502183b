package enums

import "fmt"

// LineFailureReason explains why a checkout line was not committed.
type LineFailureReason string

const (
	LineFailureInsufficientStock LineFailureReason = "insufficient_stock"
	LineFailureSnackNotFound     LineFailureReason = "snack_not_found"
)

var validLineFailureReasons = []LineFailureReason{
	LineFailureInsufficientStock,
	LineFailureSnackNotFound,
}

// String implements fmt.Stringer.
func (l LineFailureReason) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LineFailureReason.
func (l LineFailureReason) IsValid() bool {
	for _, candidate := range validLineFailureReasons {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLineFailureReason converts raw input into a LineFailureReason.
func ParseLineFailureReason(value string) (LineFailureReason, error) {
	for _, candidate := range validLineFailureReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line failure reason %q", value)
}
