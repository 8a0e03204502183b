package companies

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
)

// Repository handles company persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to company operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new company row.
func (r *Repository) Create(ctx context.Context, dto CreateCompanyDTO) (*models.Company, error) {
	company := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// FindByID loads a company by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// List returns all companies ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.WithContext(ctx).Order("name asc").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Update saves the provided company.
func (r *Repository) Update(ctx context.Context, company *models.Company) error {
	if company == nil {
		return fmt.Errorf("company is required")
	}
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete removes the company and, through the cascade, all of its snacks.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&models.Snack{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Company{}, "id = ?", id).Error
	})
}
