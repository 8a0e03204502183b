package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

type snackRepository interface {
	Create(ctx context.Context, dto CreateSnackDTO) (*models.Snack, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Snack, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Snack, error)
	Update(ctx context.Context, snack *models.Snack) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type stockSetter interface {
	SetStock(ctx context.Context, snackID uuid.UUID, qty int) (*models.Snack, error)
}

// Service exposes snack catalog management operations.
type Service interface {
	CreateSnack(ctx context.Context, companyID uuid.UUID, input CreateSnackInput) (*SnackDTO, error)
	GetSnack(ctx context.Context, id uuid.UUID) (*SnackDTO, error)
	ListSnacks(ctx context.Context, companyID uuid.UUID) ([]SnackDTO, error)
	UpdateSnack(ctx context.Context, companyID, snackID uuid.UUID, input UpdateSnackInput) (*SnackDTO, error)
	DeleteSnack(ctx context.Context, companyID, snackID uuid.UUID) error
}

type service struct {
	repo      snackRepository
	companies companyLoader
	stock     stockSetter
}

// NewService constructs a catalog service instance.
func NewService(repo snackRepository, companies companyLoader, stock stockSetter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("snack repository required")
	}
	if companies == nil {
		return nil, fmt.Errorf("company repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	return &service{repo: repo, companies: companies, stock: stock}, nil
}

// CreateSnackInput holds the validated payload to create a snack.
type CreateSnackInput struct {
	Name        string
	Description *string
	ImageURL    *string
	Price       decimal.Decimal
	Stock       int
}

// UpdateSnackInput holds optional mutation values for a snack. Stock
// goes through the ledger; every other field is a direct column write.
type UpdateSnackInput struct {
	Name        *string
	Description *string
	ImageURL    *string
	Price       *decimal.Decimal
	Stock       *int
}

func (s *service) CreateSnack(ctx context.Context, companyID uuid.UUID, input CreateSnackInput) (*SnackDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snack name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}

	snack, err := s.repo.Create(ctx, CreateSnackDTO{
		CompanyID:   companyID,
		Name:        name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Stock:       input.Stock,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create snack")
	}
	return FromModel(snack), nil
}

func (s *service) GetSnack(ctx context.Context, id uuid.UUID) (*SnackDTO, error) {
	snack, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "snack not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snack")
	}
	return FromModel(snack), nil
}

func (s *service) ListSnacks(ctx context.Context, companyID uuid.UUID) ([]SnackDTO, error) {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}

	snacks, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list snacks")
	}
	return FromModels(snacks), nil
}

func (s *service) UpdateSnack(ctx context.Context, companyID, snackID uuid.UUID, input UpdateSnackInput) (*SnackDTO, error) {
	snack, err := s.loadCompanySnack(ctx, companyID, snackID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "snack name is required")
		}
		snack.Name = name
	}
	if input.Description != nil {
		snack.Description = cloneStringPtr(input.Description)
	}
	if input.ImageURL != nil {
		snack.ImageURL = cloneStringPtr(input.ImageURL)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		snack.Price = *input.Price
	}

	if err := s.repo.Update(ctx, snack); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update snack")
	}

	if input.Stock != nil {
		updated, err := s.stock.SetStock(ctx, snackID, *input.Stock)
		if err != nil {
			return nil, err
		}
		snack.Stock = updated.Stock
	}

	return FromModel(snack), nil
}

func (s *service) DeleteSnack(ctx context.Context, companyID, snackID uuid.UUID) error {
	if _, err := s.loadCompanySnack(ctx, companyID, snackID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, snackID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete snack")
	}
	return nil
}

func (s *service) loadCompanySnack(ctx context.Context, companyID, snackID uuid.UUID) (*models.Snack, error) {
	snack, err := s.repo.FindByID(ctx, snackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "snack not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snack")
	}
	if snack.CompanyID != companyID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "snack does not belong to company")
	}
	return snack, nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
