package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestCollectStampRejectsUnknownLocation(t *testing.T) {
	h := &PublicHandler{
		Locations:   map[string]bool{"sun": true, "mercury": true, "venus": true, "earth": true},
		TotalStamps: 4,
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/collect-stamp",
		strings.NewReader(`{"userId":"u1","planetId":"pluto"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CollectStamp(c); err != nil {
		t.Fatalf("handler error %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestCollectStampRequiresBothFields(t *testing.T) {
	h := &PublicHandler{Locations: map[string]bool{"sun": true}}

	for _, body := range []string{`{}`, `{"userId":"u1"}`, `{"planetId":"sun"}`} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/collect-stamp", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.CollectStamp(c); err != nil {
			t.Fatalf("body %s: handler error %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status %d, want 400", body, rec.Code)
		}
	}
}

func TestRegisterUserRequiresUserID(t *testing.T) {
	h := &PublicHandler{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/register-user", strings.NewReader(`{"userId":" "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.RegisterUser(c); err != nil {
		t.Fatalf("handler error %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}
