package model

import "time"

// ToDoItem mirrors the 'todo_items' table. Every row belongs to exactly one
// user and all queries are scoped by UserID.
type ToDoItem struct {
	ToDoItemID  int64     `json:"todo_item_id"`
	UserID      int64     `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDoSummary aggregates per-user item counts for the dashboard.
type ToDoSummary struct {
	Total       int `json:"total"`
	Completed   int `json:"completed"`
	Incompleted int `json:"incompleted"`
	Overdue     int `json:"overdue"`
}
