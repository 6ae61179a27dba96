package patient

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cliniclite/cliniclite/internal/platform/auth"
)

// Handler exposes the patient registry over HTTP.
type Handler struct {
	svc      *Service
	report   func(w io.Writer, p *Patient) error
	fileName func(p *Patient) string
}

// NewHandler builds a patient handler. report renders a patient's medical
// record for the download endpoint and fileName names the downloaded file.
func NewHandler(svc *Service, report func(w io.Writer, p *Patient) error, fileName func(p *Patient) string) *Handler {
	return &Handler{svc: svc, report: report, fileName: fileName}
}

// RegisterRoutes registers patient routes. Reads are open to clinical roles,
// writes to administrators and doctors only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := auth.RequireRole("administrator", "doctor", "laboratory")
	write := auth.RequireRole("administrator", "doctor")

	g := api.Group("/patients")
	g.GET("", h.List, read)
	g.POST("", h.Create, write)
	g.GET("/:id", h.Get, read)
	g.PUT("/:id", h.Update, write)
	g.DELETE("/:id", h.Delete, write)
	g.POST("/:id/records", h.AddRecord, write)
	g.GET("/:id/report", h.Report, read)
}

func (h *Handler) List(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusOK, h.svc.ListPatients())
	}
	return c.JSON(http.StatusOK, h.svc.FilterPatients(q))
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := h.svc.AddPatient(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, &p)
}

func (h *Handler) Get(c echo.Context) error {
	p, ok := h.svc.GetPatient(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Update(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = c.Param("id")
	if err := h.svc.UpdatePatient(&p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, &p)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.DeletePatient(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddRecord(c echo.Context) error {
	var rec MedicalRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.DateTime.IsZero() {
		rec.DateTime = time.Now()
	}
	if err := h.svc.AddMedicalRecord(c.Param("id"), &rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, &rec)
}

// Report streams the patient's medical record as a downloadable document.
func (h *Handler) Report(c echo.Context) error {
	p, ok := h.svc.GetPatient(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	var buf bytes.Buffer
	if err := h.report(&buf, p); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", h.fileName(p)))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
