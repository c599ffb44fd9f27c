package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qcommerce/account-service/internal/core/ports"
)

// UserHandler handles administrative account queries.
type UserHandler struct {
	users ports.UserAdminService
}

func NewUserHandler(users ports.UserAdminService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns the public view of every account. Admin only.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.UserView
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Security     BearerAuth
// @Router       /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	views, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}
