package dashboard

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cliniclite/cliniclite/internal/domain/identity"
	"github.com/cliniclite/cliniclite/internal/platform/auth"
)

// Handler serves the dashboard descriptor for the calling identity.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Get, auth.RequireAuth())
}

// Get resolves the variant from the token role rather than the process-wide
// session, so each caller sees its own dashboard.
func (h *Handler) Get(c echo.Context) error {
	role, err := identity.ParseRole(auth.RoleFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, "no active session")
	}
	d, err := ForRole(role)
	if err != nil {
		if errors.Is(err, ErrUnknownRole) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}
