package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gathergraze/snackshop-backend/pkg/enums"
)

// User is a verified identity. Users with RoleUser are bound to exactly
// one company; admins have no company binding.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"column:role;not null"`
	CompanyID    *uuid.UUID `gorm:"column:company_id;type:uuid;index"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
