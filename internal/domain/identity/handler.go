package identity

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cliniclite/cliniclite/internal/platform/auth"
)

// Handler provides the HTTP surface for authentication and user management.
type Handler struct {
	svc      *Service
	secret   []byte
	tokenTTL time.Duration
}

func NewHandler(svc *Service, secret []byte, tokenTTL time.Duration) *Handler {
	return &Handler{svc: svc, secret: secret, tokenTTL: tokenTTL}
}

// RegisterRoutes registers auth and user-management routes. User CRUD is
// restricted to administrators.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/session", h.Session)

	admin := api.Group("/users", auth.RequireRole(string(RoleAdministrator)))
	admin.GET("", h.ListUsers)
	admin.POST("", h.CreateUser)
	admin.PUT("/:username", h.UpdateUser)
	admin.DELETE("/:username", h.DeleteUser)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// sanitize strips the password before a record leaves the API.
func sanitize(u *User) *User {
	out := *u
	out.Password = ""
	return &out
}

func (h *Handler) Login(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.svc.Store().Authenticate(creds.Username, creds.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	u := h.svc.Store().Current()
	token, err := auth.IssueToken(h.secret, u.Username, string(u.Role), h.tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sessionResponse{Token: token, User: sanitize(u)})
}

func (h *Handler) Signup(c echo.Context) error {
	var u User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Register(&u); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return echo.NewHTTPError(http.StatusConflict, "username already exists")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token, err := auth.IssueToken(h.secret, u.Username, string(u.Role), h.tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, sessionResponse{Token: token, User: sanitize(&u)})
}

func (h *Handler) Logout(c echo.Context) error {
	h.svc.Store().Logout()
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Session(c echo.Context) error {
	u := h.svc.Store().Current()
	if u == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no active session")
	}
	return c.JSON(http.StatusOK, sanitize(u))
}

func (h *Handler) ListUsers(c echo.Context) error {
	var users []*User
	if roleParam := c.QueryParam("role"); roleParam != "" {
		role, err := ParseRole(roleParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		users = h.svc.ListUsersByRole(role)
	} else {
		users = h.svc.ListUsers()
	}
	out := make([]*User, len(users))
	for i, u := range users {
		out[i] = sanitize(u)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var u User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateUser(&u); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return echo.NewHTTPError(http.StatusConflict, "username already exists")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, sanitize(&u))
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var u User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u.Username = c.Param("username")
	if err := h.svc.UpdateUser(&u); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sanitize(&u))
}

func (h *Handler) DeleteUser(c echo.Context) error {
	if err := h.svc.DeleteUser(c.Param("username")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
