package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

func TestServiceSetQuantityClampDoesNotReject(t *testing.T) {
	companyID := uuid.New()
	snack := &models.Snack{ID: uuid.New(), CompanyID: companyID, Name: "Chips", Price: decimal.RequireFromString("1.00"), Stock: 3}
	svc := newCartService(t, &stubLoader{snacks: map[uuid.UUID]*models.Snack{snack.ID: snack}})

	dto, err := svc.SetQuantity(context.Background(), uuid.New(), companyID, snack.ID, 9)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if dto.Quantity != 3 || !dto.Clamped {
		t.Fatalf("expected clamp to 3, got %+v", dto)
	}
}

func TestServiceSetQuantityNegative(t *testing.T) {
	svc := newCartService(t, &stubLoader{})

	_, err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), uuid.New(), -1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestServiceSetQuantityUnknownSnack(t *testing.T) {
	svc := newCartService(t, &stubLoader{})

	_, err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), uuid.New(), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestServiceSetQuantityForeignCompanySnack(t *testing.T) {
	snack := &models.Snack{ID: uuid.New(), CompanyID: uuid.New(), Name: "Chips", Price: decimal.RequireFromString("1.00"), Stock: 3}
	svc := newCartService(t, &stubLoader{snacks: map[uuid.UUID]*models.Snack{snack.ID: snack}})

	_, err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), snack.ID, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeItemUnavailable {
		t.Fatalf("expected item unavailable code, got %v", err)
	}
}

func TestServiceViewComputesTotals(t *testing.T) {
	companyID := uuid.New()
	snackA := &models.Snack{ID: uuid.New(), CompanyID: companyID, Name: "Chips", Price: decimal.RequireFromString("1.50"), Stock: 10}
	snackB := &models.Snack{ID: uuid.New(), CompanyID: companyID, Name: "Cookies", Price: decimal.RequireFromString("2.25"), Stock: 10}
	svc := newCartService(t, &stubLoader{snacks: map[uuid.UUID]*models.Snack{
		snackA.ID: snackA,
		snackB.ID: snackB,
	}})
	userID := uuid.New()

	if _, err := svc.SetQuantity(context.Background(), userID, companyID, snackA.ID, 2); err != nil {
		t.Fatalf("stage a: %v", err)
	}
	if _, err := svc.SetQuantity(context.Background(), userID, companyID, snackB.ID, 1); err != nil {
		t.Fatalf("stage b: %v", err)
	}

	view, err := svc.View(context.Background(), userID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.Lines))
	}
	if !view.Lines[0].LineTotal.Equal(decimal.RequireFromString("3.00")) {
		t.Fatalf("expected line total 3.00, got %s", view.Lines[0].LineTotal)
	}
	if !view.Total.Equal(decimal.RequireFromString("5.25")) {
		t.Fatalf("expected total 5.25, got %s", view.Total)
	}
}

func TestServiceViewDropsDeletedSnacks(t *testing.T) {
	companyID := uuid.New()
	snack := &models.Snack{ID: uuid.New(), CompanyID: companyID, Name: "Chips", Price: decimal.RequireFromString("1.00"), Stock: 5}
	loader := &stubLoader{snacks: map[uuid.UUID]*models.Snack{snack.ID: snack}}
	svc := newCartService(t, loader)
	userID := uuid.New()

	if _, err := svc.SetQuantity(context.Background(), userID, companyID, snack.ID, 2); err != nil {
		t.Fatalf("stage: %v", err)
	}
	delete(loader.snacks, snack.ID)

	view, err := svc.View(context.Background(), userID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected deleted snack dropped, got %v", view.Lines)
	}
	if lines := svc.Sessions().Attach(userID).Snapshot(); len(lines) != 0 {
		t.Fatalf("expected session line removed, got %v", lines)
	}
}

func newCartService(t *testing.T, loader snackLoader) Service {
	t.Helper()
	svc, err := NewService(NewSessionStore(), loader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubLoader struct {
	snacks map[uuid.UUID]*models.Snack
}

func (s *stubLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Snack, error) {
	if snack, ok := s.snacks[id]; ok {
		return snack, nil
	}
	return nil, gorm.ErrRecordNotFound
}
