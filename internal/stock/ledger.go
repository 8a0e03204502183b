package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

// Ledger owns every mutation of the snacks.stock column. All writes go
// through a conditional UPDATE guarded by the current stock value, so
// two committers racing for the last units can never drive the column
// negative regardless of interleaving.
type Ledger struct {
	db *gorm.DB
}

// NewLedger binds a GORM DB to stock operations.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger bound to the provided transaction so a
// decrement can share a transaction with the purchase row it funds.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	if tx == nil {
		return l
	}
	return &Ledger{db: tx}
}

// DecrementResult describes a successful conditional decrement.
// UnitPrice is read in the same transaction as the decrement, so a
// concurrent price update can never split a purchase across two prices.
type DecrementResult struct {
	SnackID   uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Quantity  int
	Remaining int
	UnitPrice decimal.Decimal
}

// GetStock returns the current stock counter for the snack.
func (l *Ledger) GetStock(ctx context.Context, snackID uuid.UUID) (int, error) {
	var snack models.Snack
	if err := l.db.WithContext(ctx).Select("id", "stock").First(&snack, "id = ?", snackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "snack not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock")
	}
	return snack.Stock, nil
}

// TryDecrement atomically subtracts qty from the snack's stock when and
// only when enough stock remains. The guard lives in the WHERE clause:
//
//	UPDATE snacks SET stock = stock - ? WHERE id = ? AND stock >= ?
//
// A zero rows-affected outcome is disambiguated with a follow-up read:
// a missing row is CodeNotFound, an existing row is *InsufficientStockError
// carrying the stock observed at rejection time.
func (l *Ledger) TryDecrement(ctx context.Context, snackID uuid.UUID, qty int) (*DecrementResult, error) {
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	res := l.db.WithContext(ctx).
		Model(&models.Snack{}).
		Where("id = ? AND stock >= ?", snackID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "decrement stock")
	}

	if res.RowsAffected == 0 {
		var snack models.Snack
		if err := l.db.WithContext(ctx).Select("id", "stock").First(&snack, "id = ?", snackID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "snack not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock")
		}
		return nil, &InsufficientStockError{SnackID: snackID, Requested: qty, Available: snack.Stock}
	}

	var snack models.Snack
	if err := l.db.WithContext(ctx).First(&snack, "id = ?", snackID).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snack after decrement")
	}
	return &DecrementResult{
		SnackID:   snackID,
		CompanyID: snack.CompanyID,
		Name:      snack.Name,
		Quantity:  qty,
		Remaining: snack.Stock,
		UnitPrice: snack.Price,
	}, nil
}

// SetStock overwrites the stock counter to an absolute value. This is
// the restock path; it never participates in checkout.
func (l *Ledger) SetStock(ctx context.Context, snackID uuid.UUID, qty int) (*models.Snack, error) {
	if qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	res := l.db.WithContext(ctx).
		Model(&models.Snack{}).
		Where("id = ?", snackID).
		UpdateColumn("stock", qty)
	if res.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "set stock")
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "snack not found")
	}

	var snack models.Snack
	if err := l.db.WithContext(ctx).First(&snack, "id = ?", snackID).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snack after set")
	}
	return &snack, nil
}
