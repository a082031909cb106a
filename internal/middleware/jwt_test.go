package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/planet-stamp-roulette/internal/utils"
)

const testSecret = "unit-test-secret"

func runProtected(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUsername string
	h := AdminAuth(testSecret)(func(c echo.Context) error {
		seenUsername = AdminUsername(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, seenUsername
}

func TestAdminAuthAcceptsIssuedToken(t *testing.T) {
	tok, err := utils.NewAdminToken(testSecret, "admin", 1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, username := runProtected(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if username != "admin" {
		t.Errorf("AdminUsername = %q, want \"admin\"", username)
	}
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	rec, _ := runProtected(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", rec.Code)
	}
	rec, _ = runProtected(t, "Basic abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("non-bearer scheme: status %d, want 401", rec.Code)
	}
}

func TestAdminAuthRejectsForeignToken(t *testing.T) {
	tok, err := utils.NewAdminToken("some-other-secret", "admin", 1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := runProtected(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status %d, want 403", rec.Code)
	}
}

func TestAdminAuthRejectsGarbageToken(t *testing.T) {
	rec, _ := runProtected(t, "Bearer not.a.jwt")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status %d, want 403", rec.Code)
	}
}
