package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/gathergraze/snackshop-backend/internal/auth"
	cartsvc "github.com/gathergraze/snackshop-backend/internal/cart"
	catalogsvc "github.com/gathergraze/snackshop-backend/internal/catalog"
	checkoutsvc "github.com/gathergraze/snackshop-backend/internal/checkout"
	companysvc "github.com/gathergraze/snackshop-backend/internal/companies"
	purchasesvc "github.com/gathergraze/snackshop-backend/internal/purchases"
	pkgAuth "github.com/gathergraze/snackshop-backend/pkg/auth"
	"github.com/gathergraze/snackshop-backend/pkg/config"
	"github.com/gathergraze/snackshop-backend/pkg/enums"
)

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.RegisterResponse, error) {
	return &authsvc.RegisterResponse{}, nil
}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{}, nil
}

func (stubAuthService) Logout(ctx context.Context, userID uuid.UUID, accessID string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) CreateSnack(ctx context.Context, companyID uuid.UUID, input catalogsvc.CreateSnackInput) (*catalogsvc.SnackDTO, error) {
	return &catalogsvc.SnackDTO{}, nil
}

func (stubCatalogService) GetSnack(ctx context.Context, id uuid.UUID) (*catalogsvc.SnackDTO, error) {
	return &catalogsvc.SnackDTO{ID: id}, nil
}

func (stubCatalogService) ListSnacks(ctx context.Context, companyID uuid.UUID) ([]catalogsvc.SnackDTO, error) {
	return nil, nil
}

func (stubCatalogService) UpdateSnack(ctx context.Context, companyID, snackID uuid.UUID, input catalogsvc.UpdateSnackInput) (*catalogsvc.SnackDTO, error) {
	return &catalogsvc.SnackDTO{ID: snackID}, nil
}

func (stubCatalogService) DeleteSnack(ctx context.Context, companyID, snackID uuid.UUID) error {
	return nil
}

type stubCartService struct {
	sessions *cartsvc.SessionStore
}

func (s stubCartService) SetQuantity(ctx context.Context, userID, companyID, snackID uuid.UUID, qty int) (*cartsvc.StagedLineDTO, error) {
	return &cartsvc.StagedLineDTO{SnackID: snackID, Quantity: qty}, nil
}

func (s stubCartService) AddOne(ctx context.Context, userID, companyID, snackID uuid.UUID) (*cartsvc.StagedLineDTO, error) {
	return &cartsvc.StagedLineDTO{SnackID: snackID, Quantity: 1}, nil
}

func (s stubCartService) RemoveOne(ctx context.Context, userID, snackID uuid.UUID) (*cartsvc.StagedLineDTO, error) {
	return &cartsvc.StagedLineDTO{SnackID: snackID}, nil
}

func (s stubCartService) View(ctx context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (s stubCartService) Clear(userID uuid.UUID) {}

func (s stubCartService) Sessions() *cartsvc.SessionStore {
	return s.sessions
}

type stubCheckoutService struct{}

func (stubCheckoutService) Commit(ctx context.Context, userID, companyID uuid.UUID, lines []checkoutsvc.CommitLine) (*checkoutsvc.Result, error) {
	return &checkoutsvc.Result{Status: enums.CheckoutStatusCommitted}, nil
}

type stubCompanyService struct{}

func (stubCompanyService) Create(ctx context.Context, input companysvc.CreateCompanyInput) (*companysvc.CompanyDTO, error) {
	return &companysvc.CompanyDTO{}, nil
}

func (stubCompanyService) GetByID(ctx context.Context, id uuid.UUID) (*companysvc.CompanyDTO, error) {
	return &companysvc.CompanyDTO{ID: id}, nil
}

func (stubCompanyService) List(ctx context.Context) ([]companysvc.CompanyDTO, error) {
	return nil, nil
}

func (stubCompanyService) Update(ctx context.Context, id uuid.UUID, input companysvc.UpdateCompanyInput) (*companysvc.CompanyDTO, error) {
	return &companysvc.CompanyDTO{ID: id}, nil
}

func (stubCompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubPurchaseService struct{}

func (stubPurchaseService) Query(ctx context.Context, filter purchasesvc.Filter) ([]purchasesvc.PurchaseDTO, error) {
	return nil, nil
}

func (stubPurchaseService) WriteCSV(w io.Writer, purchases []purchasesvc.PurchaseDTO) error {
	return nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "snackshop-test",
			ExpirationMinutes: 15,
			SessionTTLMinutes: 60,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(testRouterConfig(), nil, Services{
		Sessions:  stubSessionChecker{},
		Auth:      stubAuthService{},
		Companies: stubCompanyService{},
		Catalog:   stubCatalogService{},
		Cart:      stubCartService{sessions: cartsvc.NewSessionStore()},
		Checkout:  stubCheckoutService{},
		Purchases: stubPurchaseService{},
	})
}

func mintToken(t *testing.T, role enums.Role, companyID *uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testRouterConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:    uuid.New(),
		Role:      role,
		CompanyID: companyID,
		JTI:       uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthRoutesArePublic(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, rec.Code)
		}
	}
}

func TestMetricsRouteIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodGet, "/api/v1/snacks"},
		{http.MethodGet, "/api/v1/admin/purchases"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", p.method, p.path, rec.Code)
		}
	}
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	router := newTestRouter(t)
	companyID := uuid.New()
	token := mintToken(t, enums.RoleUser, &companyID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/companies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestAdminRoutesAllowAdmins(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, enums.RoleAdmin, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/companies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutRouteReachesService(t *testing.T) {
	router := newTestRouter(t)
	companyID := uuid.New()
	token := mintToken(t, enums.RoleUser, &companyID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}
