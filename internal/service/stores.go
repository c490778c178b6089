// Package service orchestrates the domain: credential verification, token
// lifecycle, role administration and to-do management. Services talk to the
// stores through the interfaces below and raise typed apperr failures; they
// hold no mutable state of their own and may run with arbitrary parallelism.
package service

import (
	"context"
	"time"

	"github.com/iliyamo/todo-list-api/internal/model"
	"github.com/iliyamo/todo-list-api/internal/queue"
)

// UserStore is the credential-store contract consumed by the services.
// Absence is reported as repository.ErrNotFound, not as a typed failure;
// conversion happens at the service boundary.
type UserStore interface {
	Insert(ctx context.Context, u *model.User) (int64, error)
	ByUsername(ctx context.Context, userName string) (model.User, error)
	ByID(ctx context.Context, id int64) (model.User, error)
	UsernameExists(ctx context.Context, userName string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	UpdateProfile(ctx context.Context, u *model.User) error
	UpdateRole(ctx context.Context, userID, roleID int64) error
	Delete(ctx context.Context, userID int64) error
	All(ctx context.Context) ([]model.User, error)
	AllByRole(ctx context.Context, role string) ([]model.User, error)
}

// RoleStore reads the static role reference data.
type RoleStore interface {
	All(ctx context.Context) ([]model.Role, error)
	IDByName(ctx context.Context, name string) (int64, error)
}

// TokenStore is the refresh-token store contract. Revoke and Delete report
// through their boolean whether a live row was actually affected.
type TokenStore interface {
	Insert(ctx context.Context, t *model.RefreshToken) error
	Find(ctx context.Context, token string, userID int64) (model.RefreshToken, error)
	Revoke(ctx context.Context, token string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID int64) error
	Delete(ctx context.Context, token string) (bool, error)
}

// ToDoStore is the to-do item store contract; every operation is scoped to
// the owning user.
type ToDoStore interface {
	Insert(ctx context.Context, t *model.ToDoItem) (int64, error)
	Update(ctx context.Context, t *model.ToDoItem) error
	Delete(ctx context.Context, id, userID int64) error
	ByID(ctx context.Context, id, userID int64) (model.ToDoItem, error)
	AllByUser(ctx context.Context, userID int64) ([]model.ToDoItem, error)
	Search(ctx context.Context, keyword string, userID int64) ([]model.ToDoItem, error)
	ByDueDate(ctx context.Context, due time.Time, userID int64) ([]model.ToDoItem, error)
	Overdue(ctx context.Context, userID int64) ([]model.ToDoItem, error)
	MarkCompleted(ctx context.Context, id, userID int64) error
	SetDueDate(ctx context.Context, id, userID int64, due time.Time) error
	DeleteCompleted(ctx context.Context, userID int64) (int64, error)
	Count(ctx context.Context, userID int64) (int, error)
	Summary(ctx context.Context, userID int64) (model.ToDoSummary, error)
}

// EventPublisher emits account events. Publishing is best-effort; a nil
// publisher disables it entirely.
type EventPublisher interface {
	PublishAccountEvent(ctx context.Context, event queue.AccountEvent) error
}

func publish(ctx context.Context, p EventPublisher, event string, u model.User) {
	if p == nil {
		return
	}
	_ = p.PublishAccountEvent(ctx, queue.AccountEvent{
		Event:      event,
		UserID:     u.UserID,
		UserName:   u.UserName,
		Role:       u.Role,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
