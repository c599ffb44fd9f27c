package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/qcommerce/account-service/internal/core/domain"
)

// principalKey is the echo context key under which the auth middleware
// stores the verified request principal. The value is request-scoped; there
// is no ambient global session state.
const principalKey = "principal"

func currentPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

func clearPrincipal(c echo.Context) {
	c.Set(principalKey, (*domain.Principal)(nil))
}
