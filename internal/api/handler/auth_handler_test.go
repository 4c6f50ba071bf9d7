package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clientportal/intake-gateway/internal/core/domain"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) error
	logoutFn func(ctx context.Context) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) error {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context) error {
	return s.logoutFn(ctx)
}

func TestAuthLogin_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) error {
			if username != "admin" || password != "secret" {
				t.Fatalf("credentials not forwarded: %q %q", username, password)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Login successful" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestAuthLogin_RejectionPropagates(t *testing.T) {
	e := echo.New()
	rejection := &domain.RejectionError{Message: "Invalid username or password"}
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) error {
			return rejection
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != rejection {
		t.Fatalf("expected rejection to reach the central handler, got %v", err)
	}
}

func TestAuthLogout_NoContent(t *testing.T) {
	e := echo.New()
	called := false
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	rec := httptest.NewRecorder()

	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
