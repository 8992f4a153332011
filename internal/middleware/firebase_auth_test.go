package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

func TestGetIdentity(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		setup    func(c echo.Context)
		expected *Identity
	}{
		{
			name: "returns identity when present",
			setup: func(c echo.Context) {
				SetIdentity(c, &Identity{Subject: "ext-1", Email: "a@example.com"})
			},
			expected: &Identity{Subject: "ext-1", Email: "a@example.com"},
		},
		{
			name:     "returns nil when not present",
			setup:    func(c echo.Context) {},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			tt.setup(c)

			result := GetIdentity(c)
			if tt.expected == nil {
				if result != nil {
					t.Fatalf("Expected nil identity, got %+v", result)
				}
				return
			}
			if result == nil {
				t.Fatal("Expected identity, got nil")
			}
			if result.Subject != tt.expected.Subject || result.Email != tt.expected.Email {
				t.Errorf("Expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestIdentityFromToken(t *testing.T) {
	token := &auth.Token{
		UID: "ext-1",
		Claims: map[string]interface{}{
			"email":   "a@example.com",
			"name":    "Ada",
			"picture": "https://img.example.com/a.png",
		},
	}

	identity := IdentityFromToken(token)

	if identity.Subject != "ext-1" {
		t.Errorf("Expected subject 'ext-1', got %q", identity.Subject)
	}
	if identity.Email != "a@example.com" {
		t.Errorf("Expected email 'a@example.com', got %q", identity.Email)
	}
	if identity.Name != "Ada" {
		t.Errorf("Expected name 'Ada', got %q", identity.Name)
	}
	if identity.Picture != "https://img.example.com/a.png" {
		t.Errorf("Expected picture url, got %q", identity.Picture)
	}
}

func TestIdentityFromToken_MissingClaims(t *testing.T) {
	identity := IdentityFromToken(&auth.Token{UID: "ext-2", Claims: map[string]interface{}{}})

	if identity.Subject != "ext-2" {
		t.Errorf("Expected subject 'ext-2', got %q", identity.Subject)
	}
	if identity.Email != "" || identity.Name != "" || identity.Picture != "" {
		t.Errorf("Expected empty hints, got %+v", identity)
	}
}
