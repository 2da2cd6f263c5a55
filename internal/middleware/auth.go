package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/cms-seeder/internal/auth"
)

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// AdminToken admits only requests bearing the configured API token.
// A missing bearer yields 401, any other bearer 403.
func AdminToken(token string) echo.MiddlewareFunc {
	expected := []byte(token)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, ok := bearerToken(c)
			if !ok {
				return deny(c, http.StatusUnauthorized, "UnauthorizedError", "Missing or invalid credentials")
			}
			if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				return deny(c, http.StatusForbidden, "ForbiddenError", "Forbidden")
			}
			return next(c)
		}
	}
}

// UserJWT validates user tokens issued at registration and stores the user id.
func UserJWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return deny(c, http.StatusUnauthorized, "UnauthorizedError", "Missing or invalid credentials")
			}

			claims, err := manager.ParseToken(token)
			if err != nil {
				return deny(c, http.StatusUnauthorized, "UnauthorizedError", "Invalid credentials")
			}
			id, err := claims.UserID()
			if err != nil {
				return deny(c, http.StatusUnauthorized, "UnauthorizedError", "Invalid credentials")
			}

			c.Set(ContextKeyUserID, id)
			c.Set(ContextKeyUsername, claims.Username)

			return next(c)
		}
	}
}

// UserIDFromContext returns the id stored by UserJWT.
func UserIDFromContext(c echo.Context) (int, bool) {
	id, ok := c.Get(ContextKeyUserID).(int)
	return id, ok
}
