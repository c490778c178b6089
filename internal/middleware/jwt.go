// Package middleware provides the authorization gate and the Redis-backed
// request middleware shared by the route groups.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/config"
	"github.com/iliyamo/todo-list-api/internal/utils"
)

// Context keys set by JWTAuth for downstream middleware and handlers.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxClaims = "claims"
)

// JWTAuth returns the per-request admission check for protected routes. It
// requires a syntactically valid, signature-verified, non-expired Bearer
// token and injects the typed claims into the context. No server-side
// session state is consulted; validity is purely cryptographic and temporal.
func JWTAuth(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return apperr.Unauthorized("missing bearer token")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseToken(cfg, raw)
			if err != nil {
				return apperr.Unauthorized("invalid token")
			}

			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			c.Set(ctxClaims, claims)
			return next(c)
		}
	}
}

// UserID returns the authenticated user's id stored by JWTAuth.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ctxUserID).(int64)
	return id, ok && id > 0
}

// Role returns the authenticated user's role stored by JWTAuth.
func Role(c echo.Context) string {
	role, _ := c.Get(ctxRole).(string)
	return role
}

// Claims returns the full typed claims stored by JWTAuth.
func Claims(c echo.Context) (utils.Claims, bool) {
	claims, ok := c.Get(ctxClaims).(utils.Claims)
	return claims, ok
}
