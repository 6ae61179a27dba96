package shell

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cliniclite/cliniclite/internal/domain/dashboard"
)

// Handler exposes the shell's navigation state over HTTP. The shell tracks
// the process-wide session, so this surface reflects whoever is logged in
// through the auth endpoints.
type Handler struct {
	sh *Shell
}

func NewHandler(sh *Shell) *Handler {
	return &Handler{sh: sh}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/shell", h.Get)
	api.POST("/shell/section", h.SelectSection)
}

type stateResponse struct {
	State     State                 `json:"state"`
	Dashboard *dashboard.Descriptor `json:"dashboard,omitempty"`
	Section   string                `json:"section,omitempty"`
}

func (h *Handler) state() stateResponse {
	return stateResponse{
		State:     h.sh.State(),
		Dashboard: h.sh.ActiveDashboard(),
		Section:   h.sh.ActiveSection(),
	}
}

func (h *Handler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.state())
}

func (h *Handler) SelectSection(c echo.Context) error {
	var req struct {
		Section string `json:"section"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.sh.SelectSection(req.Section); err != nil {
		if errors.Is(err, ErrLoggedOut) {
			return echo.NewHTTPError(http.StatusConflict, "not logged in")
		}
		if errors.Is(err, ErrUnknownSection) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.state())
}
