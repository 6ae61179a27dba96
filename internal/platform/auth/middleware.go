package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	usernameContextKey = "auth_username"
	roleContextKey     = "auth_role"
)

// Middleware resolves a bearer token to claims and stashes them on the echo
// context. Requests without a token pass through unauthenticated; route
// guards decide what that means.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims, err := ParseToken(secret, parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}
			c.Set(usernameContextKey, claims.Subject)
			c.Set(roleContextKey, claims.Role)
			return next(c)
		}
	}
}

// UsernameFromContext returns the authenticated username, or "".
func UsernameFromContext(c echo.Context) string {
	username, _ := c.Get(usernameContextKey).(string)
	return username
}

// RoleFromContext returns the authenticated role, or "".
func RoleFromContext(c echo.Context) string {
	role, _ := c.Get(roleContextKey).(string)
	return role
}

// RequireAuth rejects requests without authenticated claims.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UsernameFromContext(c) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// RequireRole rejects requests whose role is not one of the given roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleFromContext(c)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
