package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/qcommerce/account-service/internal/core/ports"
)

// principalKey matches the context key read by the handler package.
const principalKey = "principal"

// Auth verifies the bearer access token and injects the request principal
// into context. Verification is stateless; every request re-parses the
// presented token.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(principalKey, claims.Principal())

			return next(c)
		}
	}
}

// OptionalAuth injects the principal when a valid bearer token is presented
// but lets the request through either way. Logout uses it: logging out
// without an authenticated principal is a no-op, not an error.
func OptionalAuth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				if claims, err := tokens.Verify(parts[1]); err == nil {
					c.Set(principalKey, claims.Principal())
				}
			}
			return next(c)
		}
	}
}
