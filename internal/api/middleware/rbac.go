package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qcommerce/account-service/internal/core/domain"
)

// RBAC enforces role-based access control on the request principal.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, _ := c.Get(principalKey).(*domain.Principal)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			for _, role := range allowedRoles {
				if principal.HasRole(role) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}
