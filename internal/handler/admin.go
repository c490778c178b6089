package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/middleware"
	"github.com/iliyamo/todo-list-api/internal/service"
)

// AdminHandler exposes the user-administration endpoints. Access is gated by
// the role middleware at the router level; the handler only enforces rules
// that depend on the caller's own role.
type AdminHandler struct {
	Users *service.UserService
}

func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{Users: users}
}

func queryUserID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("userId must be a positive integer")
	}
	return id, nil
}

// GetAllUsers handles GET /api/admin/get-all-users.
func (h *AdminHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	users, err := h.Users.AllUsers(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUsersByRole handles GET /api/admin/get-all-users-by-role?role=...
func (h *AdminHandler) GetUsersByRole(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		return apperr.Validation("role is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	users, err := h.Users.UsersByRole(ctx, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/admin/get-user-by-id?userId=...
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := queryUserID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	user, err := h.Users.GetUser(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUserRole handles PUT /api/admin/update-user-role?userId=...&userRole=...
// The route is restricted to SuperAdmin.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	id, err := queryUserID(c)
	if err != nil {
		return err
	}
	role := c.QueryParam("userRole")
	if role == "" {
		return apperr.Validation("userRole is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Users.UpdateUserRole(ctx, id, role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user role updated"})
}

// DeleteUser handles DELETE /api/admin/delete-user-by-id?userId=...
// Admins may only delete ordinary users; SuperAdmin may delete anyone.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := queryUserID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Users.DeleteUser(ctx, id, middleware.Role(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
