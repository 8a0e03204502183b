package enums

import "fmt"

// LineOutcome is the per-line result of a checkout commit.
type LineOutcome string

const (
	LineOutcomePurchased LineOutcome = "purchased"
	LineOutcomeFailed    LineOutcome = "failed"
)

var validLineOutcomes = []LineOutcome{
	LineOutcomePurchased,
	LineOutcomeFailed,
}

// String implements fmt.Stringer.
func (l LineOutcome) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LineOutcome.
func (l LineOutcome) IsValid() bool {
	for _, candidate := range validLineOutcomes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLineOutcome converts raw input into a LineOutcome.
func ParseLineOutcome(value string) (LineOutcome, error) {
	for _, candidate := range validLineOutcomes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line outcome %q", value)
}
