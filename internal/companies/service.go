package companies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

type companyRepository interface {
	Create(ctx context.Context, dto CreateCompanyDTO) (*models.Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes company operations.
type Service interface {
	Create(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CompanyDTO, error)
	List(ctx context.Context) ([]CompanyDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCompanyInput) (*CompanyDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo companyRepository
}

// NewService builds a company service with the provided repository.
func NewService(repo companyRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	return &service{repo: repo}, nil
}

// CreateCompanyInput captures the fields required to register a company.
type CreateCompanyInput struct {
	Name         string
	ContactEmail string
	LogoURL      *string
}

// UpdateCompanyInput captures the allowed company fields for mutation.
type UpdateCompanyInput struct {
	Name         *string
	ContactEmail *string
	LogoURL      *string
}

func (s *service) Create(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.ContactEmail))
	if !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid contact email")
	}

	company, err := s.repo.Create(ctx, CreateCompanyDTO{
		Name:         name,
		ContactEmail: email,
		LogoURL:      cloneStringPtr(input.LogoURL),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create company")
	}
	return FromModel(company), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*CompanyDTO, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}
	return FromModel(company), nil
}

func (s *service) List(ctx context.Context) ([]CompanyDTO, error) {
	companies, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list companies")
	}
	return FromModels(companies), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCompanyInput) (*CompanyDTO, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name is required")
		}
		company.Name = name
	}
	if input.ContactEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*input.ContactEmail))
		if !strings.Contains(email, "@") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid contact email")
		}
		company.ContactEmail = email
	}
	if input.LogoURL != nil {
		company.LogoURL = cloneStringPtr(input.LogoURL)
	}

	if err := s.repo.Update(ctx, company); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update company")
	}
	return FromModel(company), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete company")
	}
	return nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
