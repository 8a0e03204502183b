package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

func TestCreateSnackSuccess(t *testing.T) {
	companyID := uuid.New()
	svc := newTestService(t, &stubSnackRepo{}, &stubCompanyLoader{id: companyID}, &stubStockSetter{})

	dto, err := svc.CreateSnack(context.Background(), companyID, CreateSnackInput{
		Name:  "  Salted Pretzels ",
		Price: decimal.RequireFromString("2.50"),
		Stock: 10,
	})
	if err != nil {
		t.Fatalf("create snack: %v", err)
	}
	if dto.Name != "Salted Pretzels" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if dto.Stock != 10 {
		t.Fatalf("expected stock 10, got %d", dto.Stock)
	}
}

func TestCreateSnackRejectsNegativePrice(t *testing.T) {
	companyID := uuid.New()
	svc := newTestService(t, &stubSnackRepo{}, &stubCompanyLoader{id: companyID}, &stubStockSetter{})

	_, err := svc.CreateSnack(context.Background(), companyID, CreateSnackInput{
		Name:  "Pretzels",
		Price: decimal.RequireFromString("-1"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestCreateSnackUnknownCompany(t *testing.T) {
	svc := newTestService(t, &stubSnackRepo{}, &stubCompanyLoader{err: gorm.ErrRecordNotFound}, &stubStockSetter{})

	_, err := svc.CreateSnack(context.Background(), uuid.New(), CreateSnackInput{
		Name:  "Pretzels",
		Price: decimal.RequireFromString("2.50"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestUpdateSnackWrongCompany(t *testing.T) {
	snack := baseSnack()
	svc := newTestService(t, &stubSnackRepo{snack: snack}, &stubCompanyLoader{id: snack.CompanyID}, &stubStockSetter{})

	_, err := svc.UpdateSnack(context.Background(), uuid.New(), snack.ID, UpdateSnackInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden code, got %v", err)
	}
}

func TestUpdateSnackDelegatesStockToLedger(t *testing.T) {
	snack := baseSnack()
	setter := &stubStockSetter{stock: 42}
	svc := newTestService(t, &stubSnackRepo{snack: snack}, &stubCompanyLoader{id: snack.CompanyID}, setter)

	newStock := 42
	dto, err := svc.UpdateSnack(context.Background(), snack.CompanyID, snack.ID, UpdateSnackInput{Stock: &newStock})
	if err != nil {
		t.Fatalf("update snack: %v", err)
	}
	if len(setter.calls) != 1 || setter.calls[0] != snack.ID {
		t.Fatalf("expected one ledger call for %s, got %v", snack.ID, setter.calls)
	}
	if dto.Stock != 42 {
		t.Fatalf("expected stock 42, got %d", dto.Stock)
	}
}

func TestDeleteSnackNotFound(t *testing.T) {
	svc := newTestService(t, &stubSnackRepo{err: gorm.ErrRecordNotFound}, &stubCompanyLoader{}, &stubStockSetter{})

	err := svc.DeleteSnack(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func newTestService(t *testing.T, repo snackRepository, companies companyLoader, stock stockSetter) Service {
	t.Helper()
	svc, err := NewService(repo, companies, stock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseSnack() *models.Snack {
	return &models.Snack{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      "Trail Mix",
		Price:     decimal.RequireFromString("3.25"),
		Stock:     7,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

type stubSnackRepo struct {
	snack   *models.Snack
	err     error
	deleted []uuid.UUID
}

func (s *stubSnackRepo) Create(ctx context.Context, dto CreateSnackDTO) (*models.Snack, error) {
	if s.err != nil {
		return nil, s.err
	}
	return dto.ToModel(), nil
}

func (s *stubSnackRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Snack, error) {
	return s.snack, s.err
}

func (s *stubSnackRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Snack, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.snack == nil {
		return nil, nil
	}
	return []models.Snack{*s.snack}, nil
}

func (s *stubSnackRepo) Update(ctx context.Context, snack *models.Snack) error {
	return s.err
}

func (s *stubSnackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubCompanyLoader struct {
	id  uuid.UUID
	err error
}

func (s *stubCompanyLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Company{ID: s.id, Name: "Test Co", ContactEmail: "c@t.co"}, nil
}

type stubStockSetter struct {
	stock int
	err   error
	calls []uuid.UUID
}

func (s *stubStockSetter) SetStock(ctx context.Context, snackID uuid.UUID, qty int) (*models.Snack, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.calls = append(s.calls, snackID)
	return &models.Snack{ID: snackID, Stock: s.stock}, nil
}
