package companies

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	repo := &stubCompanyRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateCompanyInput{
		Name:         "  Crunch Co  ",
		ContactEmail: "Hello@Crunch.co",
	})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	if dto.Name != "Crunch Co" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if dto.ContactEmail != "hello@crunch.co" {
		t.Fatalf("expected lowercased email, got %q", dto.ContactEmail)
	}
}

func TestServiceCreateRejectsEmptyName(t *testing.T) {
	svc, err := NewService(&stubCompanyRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateCompanyInput{
		Name:         "   ",
		ContactEmail: "a@b.co",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestServiceCreateRejectsBadEmail(t *testing.T) {
	svc, err := NewService(&stubCompanyRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateCompanyInput{
		Name:         "Crunch Co",
		ContactEmail: "not-an-email",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	repo := &stubCompanyRepo{err: gorm.ErrRecordNotFound}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceGetByIDDependencyError(t *testing.T) {
	repo := &stubCompanyRepo{err: errors.New("boom")}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", gotErr)
	}
}

func TestServiceUpdateSuccess(t *testing.T) {
	company := baseCompany()
	repo := &stubCompanyRepo{company: company}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	newLogo := "http://logo"
	dto, err := svc.Update(context.Background(), company.ID, UpdateCompanyInput{
		Name:    stringPtr("Updated Co"),
		LogoURL: &newLogo,
	})
	if err != nil {
		t.Fatalf("update company: %v", err)
	}
	if dto.Name != "Updated Co" {
		t.Fatalf("expected name updated, got %s", dto.Name)
	}
	if dto.LogoURL == nil || *dto.LogoURL != newLogo {
		t.Fatalf("expected logo %q got %v", newLogo, dto.LogoURL)
	}
	if repo.updated == nil {
		t.Fatal("expected repo update call")
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	repo := &stubCompanyRepo{err: gorm.ErrRecordNotFound}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func baseCompany() *models.Company {
	return &models.Company{
		ID:           uuid.New(),
		Name:         "Test Co",
		ContactEmail: "contact@test.co",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

type stubCompanyRepo struct {
	company   *models.Company
	err       error
	updateErr error
	updated   *models.Company
	deleted   []uuid.UUID
}

func (s *stubCompanyRepo) Create(ctx context.Context, dto CreateCompanyDTO) (*models.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	return dto.ToModel(), nil
}

func (s *stubCompanyRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return s.company, s.err
}

func (s *stubCompanyRepo) List(ctx context.Context) ([]models.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.company == nil {
		return nil, nil
	}
	return []models.Company{*s.company}, nil
}

func (s *stubCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = company
	return nil
}

func (s *stubCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func stringPtr(s string) *string { return &s }
