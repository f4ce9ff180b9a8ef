package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/clinicore/clinic-system/internal/api/middleware"
	"github.com/clinicore/clinic-system/internal/core/domain"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (string, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, token)
	}
	return nil
}

func (s *stubAuthService) Bootstrap(ctx context.Context, username, password string) error {
	return nil
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "admin" || password != "secret" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return "signed-token", nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	c, rec := newAuthTestContext(t, `{"username":"admin","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == apimiddleware.CookieName {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("session cookie not set")
	}
	if found.Value != "signed-token" {
		t.Fatalf("unexpected cookie value: %q", found.Value)
	}
	if !found.HttpOnly {
		t.Fatalf("cookie must be http-only")
	}
	if found.MaxAge != 3600 {
		t.Fatalf("unexpected max-age: %d", found.MaxAge)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	c, rec := newAuthTestContext(t, `{"username":"admin","password":"wrong"}`)
	err := handler.Login(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie should be set on failure")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			t.Fatalf("service should not be called")
			return "", nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	c, _ := newAuthTestContext(t, `{"username":"admin"}`)
	err := handler.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookieAndRedirects(t *testing.T) {
	var deleted string
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) { return "", nil },
		logoutFn: func(ctx context.Context, token string) error {
			deleted = token
			return nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: apimiddleware.CookieName, Value: "signed-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if deleted != "signed-token" {
		t.Fatalf("session not torn down: %q", deleted)
	}

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == apimiddleware.CookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("cookie not cleared")
	}
}
