package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/service"
)

// reqTimeout bounds the database work done for a single request.
const reqTimeout = 5 * time.Second

// AuthHandler exposes the auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// SignUp handles POST /api/auth/sign-up and returns the new user's id.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req service.UserCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	id, err := h.Auth.SignUp(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": id})
}

// Login handles POST /api/auth/login and returns an access/refresh pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.UserLoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	resp, err := h.Auth.Login(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh handles PUT /api/auth/refresh-token: it exchanges an expired-or-
// valid access token plus a live refresh token for a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req service.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	resp, err := h.Auth.Refresh(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout handles DELETE /api/auth/log-out?refreshToken=... and invalidates
// that refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := strings.TrimSpace(c.QueryParam("refreshToken"))
	if token == "" {
		return apperr.Validation("refreshToken is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Auth.Logout(ctx, token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
