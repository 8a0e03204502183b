package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is one committed checkout line. Rows are append-only: created
// exclusively by the checkout orchestrator and never updated or deleted
// by normal operation. CompanyID is denormalized from the snack for
// query convenience.
type Purchase struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	SnackID    uuid.UUID       `gorm:"column:snack_id;type:uuid;not null;index"`
	CompanyID  uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	Quantity   int             `gorm:"column:quantity;not null"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime;index"`
}
