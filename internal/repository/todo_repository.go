package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/todo-list-api/internal/model"
)

// ToDoRepo persists to-do items. Every statement filters on user_id so an
// item can never be read or mutated by anyone but its owner.
type ToDoRepo struct{ DB *sql.DB }

func NewToDoRepo(db *sql.DB) *ToDoRepo { return &ToDoRepo{DB: db} }

const todoSelect = `SELECT todo_item_id, user_id, title, description, is_completed, due_date, created_at
	FROM todo_items`

func scanToDo(row interface{ Scan(...any) error }) (model.ToDoItem, error) {
	var t model.ToDoItem
	err := row.Scan(&t.ToDoItemID, &t.UserID, &t.Title, &t.Description,
		&t.IsCompleted, &t.DueDate, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return model.ToDoItem{}, ErrNotFound
	}
	return t, err
}

// Insert stores a new item and returns its id.
func (r *ToDoRepo) Insert(ctx context.Context, t *model.ToDoItem) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO todo_items (user_id, title, description, is_completed, due_date) VALUES (?,?,?,?,?)",
		t.UserID, t.Title, t.Description, t.IsCompleted, t.DueDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites title, description, completion flag and due date.
func (r *ToDoRepo) Update(ctx context.Context, t *model.ToDoItem) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE todo_items SET title=?, description=?, is_completed=?, due_date=? WHERE todo_item_id=? AND user_id=?",
		t.Title, t.Description, t.IsCompleted, t.DueDate, t.ToDoItemID, t.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes one item.
func (r *ToDoRepo) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM todo_items WHERE todo_item_id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ByID fetches one item.
func (r *ToDoRepo) ByID(ctx context.Context, id, userID int64) (model.ToDoItem, error) {
	return scanToDo(r.DB.QueryRowContext(ctx,
		todoSelect+" WHERE todo_item_id=? AND user_id=? LIMIT 1", id, userID))
}

// AllByUser lists every item of the user, soonest due date first.
func (r *ToDoRepo) AllByUser(ctx context.Context, userID int64) ([]model.ToDoItem, error) {
	return r.query(ctx, todoSelect+" WHERE user_id=? ORDER BY due_date", userID)
}

// Search matches the keyword against title and description.
func (r *ToDoRepo) Search(ctx context.Context, keyword string, userID int64) ([]model.ToDoItem, error) {
	like := "%" + keyword + "%"
	return r.query(ctx,
		todoSelect+" WHERE user_id=? AND (title LIKE ? OR description LIKE ?) ORDER BY due_date",
		userID, like, like)
}

// ByDueDate lists items due on the given calendar day.
func (r *ToDoRepo) ByDueDate(ctx context.Context, due time.Time, userID int64) ([]model.ToDoItem, error) {
	return r.query(ctx,
		todoSelect+" WHERE user_id=? AND DATE(due_date)=DATE(?) ORDER BY due_date", userID, due)
}

// Overdue lists incomplete items whose due date has passed.
func (r *ToDoRepo) Overdue(ctx context.Context, userID int64) ([]model.ToDoItem, error) {
	return r.query(ctx,
		todoSelect+" WHERE user_id=? AND is_completed=0 AND due_date < UTC_TIMESTAMP() ORDER BY due_date",
		userID)
}

// MarkCompleted flips the completion flag on.
func (r *ToDoRepo) MarkCompleted(ctx context.Context, id, userID int64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE todo_items SET is_completed=1 WHERE todo_item_id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetDueDate moves an item's due date.
func (r *ToDoRepo) SetDueDate(ctx context.Context, id, userID int64, due time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE todo_items SET due_date=? WHERE todo_item_id=? AND user_id=?", due, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteCompleted removes every completed item and reports how many went.
func (r *ToDoRepo) DeleteCompleted(ctx context.Context, userID int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM todo_items WHERE user_id=? AND is_completed=1", userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the user's total item count.
func (r *ToDoRepo) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM todo_items WHERE user_id=?", userID).Scan(&n)
	return n, err
}

// Summary aggregates the dashboard counts in one query.
func (r *ToDoRepo) Summary(ctx context.Context, userID int64) (model.ToDoSummary, error) {
	var s model.ToDoSummary
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(1),
			COALESCE(SUM(is_completed=1),0),
			COALESCE(SUM(is_completed=0),0),
			COALESCE(SUM(is_completed=0 AND due_date < UTC_TIMESTAMP()),0)
		 FROM todo_items WHERE user_id=?`,
		userID).Scan(&s.Total, &s.Completed, &s.Incompleted, &s.Overdue)
	return s, err
}

func (r *ToDoRepo) query(ctx context.Context, query string, args ...any) ([]model.ToDoItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.ToDoItem
	for rows.Next() {
		t, err := scanToDo(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
