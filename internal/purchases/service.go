package purchases

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

type snackLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Snack, error)
}

type companyLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

// Service exposes the read side of the purchase ledger. Writes happen
// exclusively inside checkout transactions through the repository.
type Service interface {
	Query(ctx context.Context, filter Filter) ([]PurchaseDTO, error)
	WriteCSV(w io.Writer, purchases []PurchaseDTO) error
}

type service struct {
	repo      Repository
	snacks    snackLoader
	companies companyLoader
}

// NewService wires a purchase query service with the provided stack.
func NewService(repo Repository, snacks snackLoader, companies companyLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchase repository required")
	}
	if snacks == nil {
		return nil, fmt.Errorf("snack loader required")
	}
	if companies == nil {
		return nil, fmt.Errorf("company loader required")
	}
	return &service{repo: repo, snacks: snacks, companies: companies}, nil
}

func (s *service) Query(ctx context.Context, filter Filter) ([]PurchaseDTO, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date range end precedes start")
	}

	rows, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query purchases")
	}

	snackNames := make(map[uuid.UUID]string)
	companyNames := make(map[uuid.UUID]string)
	result := make([]PurchaseDTO, 0, len(rows))
	for i := range rows {
		dto := fromModel(&rows[i])
		name, err := s.snackName(ctx, snackNames, dto.SnackID)
		if err != nil {
			return nil, err
		}
		dto.SnackName = name
		name, err = s.companyName(ctx, companyNames, dto.CompanyID)
		if err != nil {
			return nil, err
		}
		dto.CompanyName = name
		result = append(result, dto)
	}
	return result, nil
}

// WriteCSV streams the purchases as a CSV document with a header row.
func (s *service) WriteCSV(w io.Writer, purchases []PurchaseDTO) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"purchase_id", "purchased_at", "company", "snack", "user_id", "quantity", "unit_price", "total_price"}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for _, p := range purchases {
		record := []string{
			p.ID.String(),
			p.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			p.CompanyName,
			p.SnackName,
			p.UserID.String(),
			fmt.Sprintf("%d", p.Quantity),
			p.UnitPrice.StringFixed(2),
			p.TotalPrice.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return nil
}

func (s *service) snackName(ctx context.Context, cache map[uuid.UUID]string, id uuid.UUID) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	snack, err := s.snacks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache[id] = ""
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snack")
	}
	cache[id] = snack.Name
	return snack.Name, nil
}

func (s *service) companyName(ctx context.Context, cache map[uuid.UUID]string, id uuid.UUID) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache[id] = ""
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}
	cache[id] = company.Name
	return company.Name, nil
}
