package model

import "time"

// RefreshToken mirrors the 'refresh_tokens' table. A token is usable only
// while Revoked is false and ExpiresAt is in the future.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Revoked   bool
}
