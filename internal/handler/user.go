package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/service"
)

// UserHandler exposes the self-service endpoints for the authenticated user.
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// Me handles GET /api/user/me and returns the caller's profile as stored,
// not just the token claims.
func (h *UserHandler) Me(c echo.Context) error {
	id, err := callerID(c)
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

// UpdateProfile handles PUT /api/user/update-user. The caller can only
// change their own record; the id comes from the token, never the body.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	var req service.UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, id, req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}
