package companies

import (
	"time"

	"github.com/google/uuid"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
)

// CompanyDTO is the transport shape for a company.
type CompanyDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	LogoURL      *string   `json:"logo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCompanyDTO holds the data required to persist a new company.
type CreateCompanyDTO struct {
	Name         string
	ContactEmail string
	LogoURL      *string
}

func FromModel(c *models.Company) *CompanyDTO {
	if c == nil {
		return nil
	}

	return &CompanyDTO{
		ID:           c.ID,
		Name:         c.Name,
		ContactEmail: c.ContactEmail,
		LogoURL:      c.LogoURL,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func FromModels(list []models.Company) []CompanyDTO {
	res := make([]CompanyDTO, 0, len(list))
	for i := range list {
		res = append(res, *FromModel(&list[i]))
	}
	return res
}

func (c CreateCompanyDTO) ToModel() *models.Company {
	return &models.Company{
		ID:           uuid.New(),
		Name:         c.Name,
		ContactEmail: c.ContactEmail,
		LogoURL:      c.LogoURL,
	}
}
