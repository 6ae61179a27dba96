package shell

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cliniclite/cliniclite/internal/domain/identity"
)

func newTestHandlerShell(t *testing.T) (*Handler, *identity.Store, *echo.Echo) {
	t.Helper()
	sh, store := newTestShell(t)
	return NewHandler(sh), store, echo.New()
}

func TestHandler_Get_LoggedOut(t *testing.T) {
	h, _, e := newTestHandlerShell(t)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.State != StateLoggedOut {
		t.Errorf("expected logged_out, got %s", resp.State)
	}
	if resp.Dashboard != nil {
		t.Error("expected no dashboard")
	}
}

func TestHandler_Get_AfterStoreLogin(t *testing.T) {
	h, store, e := newTestHandlerShell(t)
	// The auth endpoint path: the store authenticates, the shell follows.
	if !store.Authenticate("doctor1", "doctor123") {
		t.Fatal("login should succeed")
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.State != StateLoggedIn {
		t.Fatalf("expected logged_in, got %s", resp.State)
	}
	if resp.Dashboard == nil || resp.Section != "patients" {
		t.Errorf("expected doctor dashboard at patients, got %+v", resp)
	}
}

func TestHandler_SelectSection(t *testing.T) {
	h, store, e := newTestHandlerShell(t)
	store.Authenticate("doctor1", "doctor123")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"section":"reports"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.SelectSection(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Section != "reports" {
		t.Errorf("expected reports, got %q", resp.Section)
	}
}

func TestHandler_SelectSection_Unknown(t *testing.T) {
	h, store, e := newTestHandlerShell(t)
	store.Authenticate("doctor1", "doctor123")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"section":"users"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h.SelectSection(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_SelectSection_LoggedOut(t *testing.T) {
	h, _, e := newTestHandlerShell(t)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"section":"patients"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h.SelectSection(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}
