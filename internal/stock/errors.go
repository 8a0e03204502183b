package stock

import (
	"fmt"

	"github.com/google/uuid"
)

// InsufficientStockError reports a conditional decrement that failed
// because the remaining stock could not cover the requested quantity.
// Available carries the stock observed at rejection time so callers can
// surface it to the buyer.
type InsufficientStockError struct {
	SnackID   uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for snack %s: requested %d, available %d", e.SnackID, e.Requested, e.Available)
}
