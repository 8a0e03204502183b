package purchases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
)

// Filter narrows a purchase ledger query. Nil fields match everything,
// so an empty filter returns the full ledger.
type Filter struct {
	CompanyID *uuid.UUID
	UserID    *uuid.UUID
	SnackID   *uuid.UUID
	From      *time.Time
	To        *time.Time
}

// Repository manages persistence for purchase ledger rows. The ledger
// is append-only: there is deliberately no update or delete operation.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, purchase *models.Purchase) error
	Query(ctx context.Context, filter Filter) ([]models.Purchase, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a purchase repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *repository) Query(ctx context.Context, filter Filter) ([]models.Purchase, error) {
	q := r.db.WithContext(ctx).Model(&models.Purchase{})
	if filter.CompanyID != nil {
		q = q.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.SnackID != nil {
		q = q.Where("snack_id = ?", *filter.SnackID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	var purchases []models.Purchase
	if err := q.Order("created_at ASC").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}
