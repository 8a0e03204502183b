package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
)

// SnackDTO is the transport shape for a catalog item.
type SnackDTO struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateSnackDTO holds the data required to persist a new snack.
type CreateSnackDTO struct {
	CompanyID   uuid.UUID
	Name        string
	Description *string
	ImageURL    *string
	Price       decimal.Decimal
	Stock       int
}

func FromModel(s *models.Snack) *SnackDTO {
	if s == nil {
		return nil
	}

	return &SnackDTO{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Name:        s.Name,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		Price:       s.Price,
		Stock:       s.Stock,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromModels(list []models.Snack) []SnackDTO {
	res := make([]SnackDTO, 0, len(list))
	for i := range list {
		res = append(res, *FromModel(&list[i]))
	}
	return res
}

func (c CreateSnackDTO) ToModel() *models.Snack {
	return &models.Snack{
		ID:          uuid.New(),
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Price:       c.Price,
		Stock:       c.Stock,
	}
}
