package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
)

// Repository handles snack persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to snack operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new snack row.
func (r *Repository) Create(ctx context.Context, dto CreateSnackDTO) (*models.Snack, error) {
	snack := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(snack).Error; err != nil {
		return nil, err
	}
	return snack, nil
}

// FindByID loads a snack by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Snack, error) {
	var snack models.Snack
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&snack).Error; err != nil {
		return nil, err
	}
	return &snack, nil
}

// ListByCompany returns every snack owned by the company ordered by name.
func (r *Repository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Snack, error) {
	var snacks []models.Snack
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name asc").
		Find(&snacks).Error; err != nil {
		return nil, err
	}
	return snacks, nil
}

// Update saves the provided snack. Stock is deliberately excluded: the
// stock ledger is the only writer of that column.
func (r *Repository) Update(ctx context.Context, snack *models.Snack) error {
	if snack == nil {
		return fmt.Errorf("snack is required")
	}
	return r.db.WithContext(ctx).
		Model(snack).
		Select("name", "description", "image_url", "price", "updated_at").
		Updates(snack).Error
}

// Delete removes the snack row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Snack{}, "id = ?", id).Error
}
