package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/todo-list-api/internal/model"
)

// TokenRepo persists refresh tokens.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Insert stores a new refresh token row.
func (r *TokenRepo) Insert(ctx context.Context, t *model.RefreshToken) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token, expires_at, revoked) VALUES (?,?,?,0)",
		t.UserID, t.Token, t.ExpiresAt)
	return err
}

// Find returns the token record scoped to the given user.
func (r *TokenRepo) Find(ctx context.Context, token string, userID int64) (model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token, expires_at, revoked FROM refresh_tokens WHERE token=? AND user_id=? LIMIT 1",
		token, userID).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Revoked)
	if err == sql.ErrNoRows {
		return model.RefreshToken{}, ErrNotFound
	}
	return t, err
}

// Revoke marks a token revoked with a single conditional update. The false
// return means the token was missing or already revoked, which makes
// concurrent double-refresh attempts mutually exclusive.
func (r *TokenRepo) Revoke(ctx context.Context, token string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked=1 WHERE token=? AND revoked=0", token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RevokeAllForUser revokes every live token of the user.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID int64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked=1 WHERE user_id=? AND revoked=0", userID)
	return err
}

// Delete removes a token row outright; false means it did not exist.
func (r *TokenRepo) Delete(ctx context.Context, token string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE token=?", token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
