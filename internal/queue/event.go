// Package queue defines the account events exchanged over the message broker
// and the background consumer that turns them into an audit log.
package queue

// Account event names.
const (
	EventUserRegistered  = "user.registered"
	EventUserDeleted     = "user.deleted"
	EventUserRoleChanged = "user.role_changed"
)

// AccountEvent is published when an account is created, deleted or has its
// role changed. It carries enough for downstream consumers to audit or
// notify without querying the primary database.
type AccountEvent struct {
	Event      string `json:"event"`
	UserID     int64  `json:"user_id"`
	UserName   string `json:"user_name"`
	Role       string `json:"role"`
	OccurredAt string `json:"occurred_at"`
}
