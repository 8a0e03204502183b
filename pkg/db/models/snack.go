package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snack is a sellable catalog item scoped to one company. Stock is the
// authoritative counter mutated only by the stock ledger; the column
// carries a CHECK (stock >= 0) constraint so a bad write can never drive
// it negative.
type Snack struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	ImageURL    *string         `gorm:"column:image_url"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
