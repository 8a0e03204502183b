package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gathergraze/snackshop-backend/api/middleware"
	authsvc "github.com/gathergraze/snackshop-backend/internal/auth"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

type stubAuthService struct {
	lastLogin     authsvc.LoginRequest
	lastUserID    uuid.UUID
	lastAccessID  string
	loginResp     *authsvc.LoginResponse
	loginErr      error
	registerResp  *authsvc.RegisterResponse
	registerErr   error
	logoutErr     error
	logoutInvoked bool
}

func (s *stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.RegisterResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	s.lastLogin = req
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Logout(ctx context.Context, userID uuid.UUID, accessID string) error {
	s.logoutInvoked = true
	s.lastUserID, s.lastAccessID = userID, accessID
	return s.logoutErr
}

func TestAuthLoginReturnsToken(t *testing.T) {
	svc := &stubAuthService{
		loginResp: &authsvc.LoginResponse{AccessToken: "tok"},
	}
	handler := AuthLogin(svc, nil)

	body := `{"email":"pat@example.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastLogin.Email != "pat@example.com" {
		t.Fatalf("unexpected login request: %+v", svc.lastLogin)
	}

	var envelope struct {
		Data authsvc.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "tok" {
		t.Fatalf("token missing from response: %+v", envelope.Data)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"),
	}
	handler := AuthLogin(svc, nil)

	body := `{"email":"pat@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthLogout(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{}
	handler := AuthLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithAccessID(ctx, "jti-1")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.logoutInvoked || svc.lastUserID != userID || svc.lastAccessID != "jti-1" {
		t.Fatalf("unexpected logout call: %+v", svc)
	}
}

func TestAuthLogoutWithoutSession(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New().String()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
