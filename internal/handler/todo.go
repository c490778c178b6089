package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/middleware"
	"github.com/iliyamo/todo-list-api/internal/service"
)

// ToDoHandler exposes the to-do item endpoints. All operations run against
// the caller's own list; the user id comes from the access token.
type ToDoHandler struct {
	Items *service.ToDoService
}

func NewToDoHandler(items *service.ToDoService) *ToDoHandler {
	return &ToDoHandler{Items: items}
}

func callerID(c echo.Context) (int64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, apperr.Unauthorized("unauthorized")
	}
	return id, nil
}

func queryID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.QueryParam("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("id must be a positive integer")
	}
	return id, nil
}

// queryDate accepts RFC 3339 timestamps and bare dates.
func queryDate(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validation("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", name)
}

// Create handles POST /api/to-do-item/create.
func (h *ToDoHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req service.ToDoItemCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	id, err := h.Items.Create(ctx, req, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update handles PUT /api/to-do-item/update.
func (h *ToDoHandler) Update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req service.ToDoItemUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Items.Update(ctx, req, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "to-do item updated"})
}

// Delete handles DELETE /api/to-do-item/delete?id=...
func (h *ToDoHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := queryID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Items.Delete(ctx, id, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /api/to-do-item/select-by-id?id=...
func (h *ToDoHandler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := queryID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	item, err := h.Items.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// All handles GET /api/to-do-item/get-all.
func (h *ToDoHandler) All(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	items, err := h.Items.All(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Search handles GET /api/to-do-item/search?keyword=...
func (h *ToDoHandler) Search(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return apperr.Validation("keyword is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	items, err := h.Items.Search(ctx, keyword, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// FilterByDate handles GET /api/to-do-item/filter-by-date?dueDate=...
func (h *ToDoHandler) FilterByDate(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	due, err := queryDate(c, "dueDate")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	items, err := h.Items.ByDueDate(ctx, due, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Overdue handles GET /api/to-do-item/overdue.
func (h *ToDoHandler) Overdue(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	items, err := h.Items.Overdue(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// MarkCompleted handles PATCH /api/to-do-item/mark-as-compleated?id=...
// (the misspelled path is kept for client compatibility).
func (h *ToDoHandler) MarkCompleted(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := queryID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Items.MarkCompleted(ctx, id, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "to-do item marked as completed"})
}

// SetDueDate handles PUT /api/to-do-item/set-due-date?id=...&dueDate=...
func (h *ToDoHandler) SetDueDate(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := queryID(c)
	if err != nil {
		return err
	}
	due, err := queryDate(c, "dueDate")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Items.SetDueDate(ctx, id, userID, due); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("due date set to %s", due.Format(time.RFC3339))})
}

// DeleteCompleted handles DELETE /api/to-do-item/delete-all-completed.
func (h *ToDoHandler) DeleteCompleted(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	n, err := h.Items.DeleteCompleted(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}

// Count handles GET /api/to-do-item/count.
func (h *ToDoHandler) Count(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	n, err := h.Items.Count(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// Summary handles GET /api/to-do-item/get-summary.
func (h *ToDoHandler) Summary(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	summary, err := h.Items.Summary(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
