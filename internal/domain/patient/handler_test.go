package patient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := NewService(NewRegistry())
	report := func(w io.Writer, p *Patient) error {
		_, err := fmt.Fprintf(w, "REPORT %s\n", p.FullName())
		return err
	}
	fileName := func(p *Patient) string {
		return strings.ReplaceAll(p.FullName(), " ", "_") + ".pdf"
	}
	return NewHandler(svc, report, fileName), echo.New()
}

func seedPatient(h *Handler) *Patient {
	p := New("John", "Smith",
		time.Date(1980, time.April, 15, 0, 0, 0, 0, time.UTC),
		"Male", "555-123-4567", "john.smith@example.com",
		"123 Main St, Anytown, USA", "O+")
	h.svc.AddPatient(p)
	return p
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	body := `{"first_name":"John","last_name":"Smith","blood_type":"O+"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var p Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("expected an assigned id")
	}
}

func TestHandler_Create_BadRequest(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Get(t *testing.T) {
	h, e := newTestHandler()
	p := seedPatient(h)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_List_Filter(t *testing.T) {
	h, e := newTestHandler()
	seedPatient(h)
	other := New("Emily", "Johnson", time.Time{}, "Female", "", "", "", "A-")
	h.svc.AddPatient(other)

	req := httptest.NewRequest(http.MethodGet, "/?q=smith", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []*Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].LastName != "Smith" {
		t.Errorf("expected only Smith, got %d results", len(got))
	}
}

func TestHandler_AddRecord(t *testing.T) {
	h, e := newTestHandler()
	p := seedPatient(h)
	body := `{"doctor_name":"Dr. Johnson","diagnosis":"Hypertension","record_type":"Check-up"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.AddRecord(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	stored, _ := h.svc.GetPatient(p.ID)
	if len(stored.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(stored.Records))
	}
	if stored.Records[0].ID == "" || stored.Records[0].DateTime.IsZero() {
		t.Error("expected id and timestamp to be assigned")
	}
}

func TestHandler_Delete(t *testing.T) {
	h, e := newTestHandler()
	p := seedPatient(h)
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestHandler_Report(t *testing.T) {
	h, e := newTestHandler()
	p := seedPatient(h)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.Report(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "REPORT John Smith") {
		t.Error("expected rendered report body")
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "John_Smith.pdf") {
		t.Errorf("expected download filename, got %q", cd)
	}
}

func TestHandler_Report_SpacedName(t *testing.T) {
	h, e := newTestHandler()
	p := New("Mary Jane", "Smith", time.Time{}, "Female", "", "", "", "A+")
	h.svc.AddPatient(p)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.Report(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "Mary_Jane_Smith.pdf") {
		t.Errorf("expected every space collapsed in the filename, got %q", cd)
	}
}
