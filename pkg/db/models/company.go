package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is a tenant owning its own snack catalog. Deleting a company
// cascades deletion of its snacks and cannot be undone.
type Company struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	ContactEmail string    `gorm:"column:contact_email;not null"`
	LogoURL      *string   `gorm:"column:logo_url"`
	Snacks       []Snack   `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
