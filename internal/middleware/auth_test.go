package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
)

func TestGetExternalID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		setup    func(c echo.Context)
		expected string
	}{
		{
			name: "returns external id when present",
			setup: func(c echo.Context) {
				ctx := context.WithValue(c.Request().Context(), ExternalIDKey, "auth0|12345")
				c.SetRequest(c.Request().WithContext(ctx))
			},
			expected: "auth0|12345",
		},
		{
			name:     "returns empty string when not present",
			setup:    func(c echo.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			tt.setup(c)

			result := GetExternalID(c)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	e := echo.New()

	t.Run("returns user id when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		ctx := context.WithValue(c.Request().Context(), UserIDKey, int64(7))
		c.SetRequest(c.Request().WithContext(ctx))

		if got := GetUserID(c); got != 7 {
			t.Errorf("Expected 7, got %d", got)
		}
	})

	t.Run("returns zero when not present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if got := GetUserID(c); got != 0 {
			t.Errorf("Expected 0, got %d", got)
		}
	})
}

func TestGetCustomClaims(t *testing.T) {
	e := echo.New()

	t.Run("returns custom claims when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		claims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|test"},
			CustomClaims:     &CustomClaims{Email: "ana@example.com", Name: "Ana"},
		}
		ctx := context.WithValue(c.Request().Context(), ClaimsKey, claims)
		c.SetRequest(c.Request().WithContext(ctx))

		custom := GetCustomClaims(c)
		if custom == nil {
			t.Fatal("Expected custom claims, got nil")
		}
		if custom.Email != "ana@example.com" {
			t.Errorf("Expected email 'ana@example.com', got %q", custom.Email)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if custom := GetCustomClaims(c); custom != nil {
			t.Errorf("Expected nil, got %v", custom)
		}
	})
}

type stubUserProvider struct {
	userID int64
	err    error
}

func (s *stubUserProvider) GetUserIDByExternalID(externalID string) (int64, error) {
	return s.userID, s.err
}

func TestRequireUser_ResolvesLocalUser(t *testing.T) {
	e := echo.New()
	m := &AuthMiddleware{userProvider: &stubUserProvider{userID: 7}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ctx := context.WithValue(c.Request().Context(), ExternalIDKey, "auth0|ana")
	c.SetRequest(c.Request().WithContext(ctx))

	var seenUserID int64
	handler := func(c echo.Context) error {
		seenUserID = GetUserID(c)
		return c.NoContent(http.StatusOK)
	}

	if err := m.RequireUser()(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if seenUserID != 7 {
		t.Errorf("Expected user 7 in context, got %d", seenUserID)
	}
}

func TestRequireUser_UnsyncedSubject(t *testing.T) {
	e := echo.New()
	m := &AuthMiddleware{userProvider: &stubUserProvider{err: errors.New("user not found")}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ctx := context.WithValue(c.Request().Context(), ExternalIDKey, "auth0|ghost")
	c.SetRequest(c.Request().WithContext(ctx))

	handler := func(c echo.Context) error {
		t.Fatal("Handler should not run for unsynced subjects")
		return nil
	}

	err := m.RequireUser()(handler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", httpErr.Code)
	}
}

func TestRequireUser_MissingSubject(t *testing.T) {
	e := echo.New()
	m := &AuthMiddleware{userProvider: &stubUserProvider{userID: 7}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		t.Fatal("Handler should not run without an authenticated subject")
		return nil
	}

	err := m.RequireUser()(handler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", httpErr.Code)
	}
}
