package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/todo-list-api/internal/config"
	"github.com/iliyamo/todo-list-api/internal/handler"
	"github.com/iliyamo/todo-list-api/internal/middleware"
	"github.com/iliyamo/todo-list-api/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth   *handler.AuthHandler
	ToDo   *handler.ToDoHandler
	Admin  *handler.AdminHandler
	Role   *handler.RoleHandler
	User   *handler.UserHandler
	Health *handler.HealthHandler
}

// Register mounts all routes on e. The auth group carries the Redis token
// bucket so credential endpoints cannot be hammered; everything under /api
// except /api/auth requires a valid access token.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.GET("/healthz", h.Health.Check)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	authGuard := middleware.JWTAuth(cfg)

	auth := e.Group("/api/auth", limiter)
	auth.POST("/sign-up", h.Auth.SignUp)
	auth.POST("/login", h.Auth.Login)
	auth.PUT("/refresh-token", h.Auth.Refresh)
	auth.DELETE("/log-out", h.Auth.Logout)

	items := e.Group("/api/to-do-item", authGuard)
	items.POST("/create", h.ToDo.Create)
	items.PUT("/update", h.ToDo.Update)
	items.DELETE("/delete", h.ToDo.Delete)
	items.GET("/select-by-id", h.ToDo.Get)
	items.GET("/get-all", h.ToDo.All)
	items.GET("/search", h.ToDo.Search)
	items.GET("/filter-by-date", h.ToDo.FilterByDate)
	items.GET("/overdue", h.ToDo.Overdue)
	// historical misspelling kept so existing clients keep working
	items.PATCH("/mark-as-compleated", h.ToDo.MarkCompleted)
	items.PUT("/set-due-date", h.ToDo.SetDueDate)
	items.DELETE("/delete-all-completed", h.ToDo.DeleteCompleted)
	items.GET("/count", h.ToDo.Count)
	items.GET("/get-summary", h.ToDo.Summary)

	admin := e.Group("/api/admin", authGuard, middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin))
	admin.GET("/get-all-users", h.Admin.GetAllUsers, middleware.NewResponseCache(config.LoadCacheConfig(), rdb))
	admin.GET("/get-all-users-by-role", h.Admin.GetUsersByRole)
	admin.GET("/get-user-by-id", h.Admin.GetUser)
	admin.PUT("/update-user-role", h.Admin.UpdateUserRole, middleware.RequireRole(model.RoleSuperAdmin))
	admin.DELETE("/delete-user-by-id", h.Admin.DeleteUser)

	role := e.Group("/api/role", authGuard)
	role.GET("/get-all-roles", h.Role.GetAllRoles)

	user := e.Group("/api/user", authGuard)
	user.GET("/me", h.User.Me)
	user.PUT("/update-user", h.User.UpdateProfile)
}
