package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gathergraze/snackshop-backend/pkg/enums"
)

// CommitLine is one requested purchase: a snack and how many of it.
type CommitLine struct {
	SnackID  uuid.UUID `json:"snack_id"`
	Quantity int       `json:"quantity"`
}

// LineResult reports the outcome of one committed line. Available is
// set only for insufficient-stock failures and carries the stock seen
// when the decrement was refused.
type LineResult struct {
	SnackID    uuid.UUID                `json:"snack_id"`
	SnackName  string                   `json:"snack_name,omitempty"`
	Quantity   int                      `json:"quantity"`
	Outcome    enums.LineOutcome        `json:"outcome"`
	Reason     *enums.LineFailureReason `json:"reason,omitempty"`
	Available  *int                     `json:"available,omitempty"`
	PurchaseID *uuid.UUID               `json:"purchase_id,omitempty"`
	UnitPrice  *decimal.Decimal         `json:"unit_price,omitempty"`
	LineTotal  *decimal.Decimal         `json:"line_total,omitempty"`

	// AvailableAtValidation is the stock observed during the advisory
	// pre-commit read. It is a warning signal only; the conditional
	// decrement is the sole authority on what commits.
	AvailableAtValidation *int `json:"available_at_validation,omitempty"`
}

// Result is the outcome of a whole checkout. Rejected means nothing was
// attempted and no state changed; PartiallyFailed means the committed
// lines stand while the failed ones report why.
type Result struct {
	Status       enums.CheckoutStatus `json:"status"`
	RejectReason string               `json:"reject_reason,omitempty"`
	Lines        []LineResult         `json:"lines"`
	Total        decimal.Decimal      `json:"total"`
}

// PurchasedSnackIDs lists the snacks whose lines committed, in order.
func (r *Result) PurchasedSnackIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Lines))
	for _, line := range r.Lines {
		if line.Outcome == enums.LineOutcomePurchased {
			ids = append(ids, line.SnackID)
		}
	}
	return ids
}
