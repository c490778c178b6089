package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-list-api/internal/apperr"
)

// RequireRole enforces that the authenticated user holds one of the given
// roles. It assumes JWTAuth already ran and stored the role claim; a missing
// or unlisted role aborts the request with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[Role(c)] {
				return apperr.Forbidden("forbidden")
			}
			return next(c)
		}
	}
}
