package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/myapp/catalog-api/internal/api/handler"
	"github.com/myapp/catalog-api/internal/core/domain"
	"github.com/myapp/catalog-api/internal/core/service"
)

func newVerifier(t *testing.T) *service.CredentialService {
	t.Helper()
	creds, err := service.NewCredentialService("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCredentialService: %v", err)
	}
	return creds
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	creds := newVerifier(t)
	signed, err := creds.Issue(42)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(creds, zerolog.Nop())
	h := mw(func(c echo.Context) error {
		called = true
		if c.Get(handler.AccountIDKey) != int64(42) {
			t.Fatalf("account_id not set")
		}
		if id, ok := domain.AccountIDFrom(c.Request().Context()); !ok || id != 42 {
			t.Fatalf("account id not attached to request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	creds := newVerifier(t)
	other, err := service.NewCredentialService("other", time.Hour)
	if err != nil {
		t.Fatalf("NewCredentialService: %v", err)
	}
	foreign, _ := other.Issue(1)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"empty token", "Bearer "},
		{"malformed token", "Bearer not-a-token"},
		{"foreign signature", "Bearer " + foreign},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := Auth(creds, zerolog.Nop())
			h := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := h(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
