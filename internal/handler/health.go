package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c echo.Context) error {
	status := "ok"
	dbStatus := "ok"
	if h.DB != nil {
		if err := h.DB.PingContext(c.Request().Context()); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
		}
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, echo.Map{
		"status":   status,
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
