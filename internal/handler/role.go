package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-list-api/internal/service"
)

// RoleHandler exposes the role listing endpoint.
type RoleHandler struct {
	Roles *service.RoleService
}

func NewRoleHandler(roles *service.RoleService) *RoleHandler {
	return &RoleHandler{Roles: roles}
}

// GetAllRoles handles GET /api/role/get-all-roles.
func (h *RoleHandler) GetAllRoles(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	roles, err := h.Roles.AllRoles(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}
