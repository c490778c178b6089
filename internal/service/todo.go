package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/model"
	"github.com/iliyamo/todo-list-api/internal/repository"
	"github.com/iliyamo/todo-list-api/internal/validator"
)

// ToDoService manages the caller's private to-do list. Every operation
// takes the user id extracted from the access token by the gate.
type ToDoService struct {
	items ToDoStore
}

func NewToDoService(items ToDoStore) *ToDoService { return &ToDoService{items: items} }

// Create validates and stores a new item, returning its id.
func (s *ToDoService) Create(ctx context.Context, req ToDoItemCreateRequest, userID int64) (int64, error) {
	if err := validator.Struct(req); err != nil {
		return 0, err
	}
	item := model.ToDoItem{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	return s.items.Insert(ctx, &item)
}

// Update validates and rewrites an existing item.
func (s *ToDoService) Update(ctx context.Context, req ToDoItemUpdateRequest, userID int64) error {
	if err := validator.Struct(req); err != nil {
		return err
	}
	item := model.ToDoItem{
		ToDoItemID:  req.ToDoItemID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		DueDate:     req.DueDate,
	}
	return s.notFound(s.items.Update(ctx, &item))
}

// Delete removes one item.
func (s *ToDoService) Delete(ctx context.Context, id, userID int64) error {
	return s.notFound(s.items.Delete(ctx, id, userID))
}

// Get fetches one item.
func (s *ToDoService) Get(ctx context.Context, id, userID int64) (model.ToDoItem, error) {
	item, err := s.items.ByID(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.ToDoItem{}, apperr.NotFound("to-do item not found")
	}
	return item, err
}

// All lists the user's items.
func (s *ToDoService) All(ctx context.Context, userID int64) ([]model.ToDoItem, error) {
	return s.items.AllByUser(ctx, userID)
}

// Search matches a keyword against titles and descriptions.
func (s *ToDoService) Search(ctx context.Context, keyword string, userID int64) ([]model.ToDoItem, error) {
	return s.items.Search(ctx, keyword, userID)
}

// ByDueDate lists items due on the given day.
func (s *ToDoService) ByDueDate(ctx context.Context, due time.Time, userID int64) ([]model.ToDoItem, error) {
	return s.items.ByDueDate(ctx, due, userID)
}

// Overdue lists incomplete items past their due date.
func (s *ToDoService) Overdue(ctx context.Context, userID int64) ([]model.ToDoItem, error) {
	return s.items.Overdue(ctx, userID)
}

// MarkCompleted flips an item's completion flag on.
func (s *ToDoService) MarkCompleted(ctx context.Context, id, userID int64) error {
	return s.notFound(s.items.MarkCompleted(ctx, id, userID))
}

// SetDueDate moves an item's due date. The same five-minute lead time applies
// as on create and update.
func (s *ToDoService) SetDueDate(ctx context.Context, id, userID int64, due time.Time) error {
	if !due.After(time.Now().Add(5 * time.Minute)) {
		return apperr.Validation("Due date must be more than 5 minutes in the future.")
	}
	return s.notFound(s.items.SetDueDate(ctx, id, userID, due))
}

// DeleteCompleted removes every completed item; zero removals is not-found
// so the client can tell nothing happened.
func (s *ToDoService) DeleteCompleted(ctx context.Context, userID int64) (int64, error) {
	n, err := s.items.DeleteCompleted(ctx, userID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, apperr.NotFound("no completed to-do items found to delete")
	}
	return n, nil
}

// Count returns the user's total item count.
func (s *ToDoService) Count(ctx context.Context, userID int64) (int, error) {
	return s.items.Count(ctx, userID)
}

// Summary aggregates the dashboard counts.
func (s *ToDoService) Summary(ctx context.Context, userID int64) (model.ToDoSummary, error) {
	return s.items.Summary(ctx, userID)
}

func (s *ToDoService) notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("to-do item not found")
	}
	return err
}
