package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/todo-list-api/internal/model"
)

// UserRepo persists users. Every read joins user_roles so the returned
// aggregate carries the role name; callers never traverse role ids.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `u.user_id, u.first_name, u.last_name, u.user_name, u.email,
	u.phone_number, u.password_hash, u.salt, u.role_id, r.name,
	u.created_at, u.updated_at`

const userSelect = "SELECT " + userColumns + " FROM users u JOIN user_roles r ON r.id = u.role_id"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.UserName, &u.Email,
		&u.PhoneNumber, &u.PasswordHash, &u.Salt, &u.RoleID, &u.Role,
		&u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Insert stores a new user and returns its id.
func (r *UserRepo) Insert(ctx context.Context, u *model.User) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, user_name, email, phone_number,
			password_hash, salt, role_id) VALUES (?,?,?,?,?,?,?,?)`,
		u.FirstName, u.LastName, u.UserName, u.Email, u.PhoneNumber,
		u.PasswordHash, u.Salt, u.RoleID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

// ByUsername fetches a user by username.
func (r *UserRepo) ByUsername(ctx context.Context, userName string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+" WHERE u.user_name=? LIMIT 1", userName))
}

// ByID fetches a user by id.
func (r *UserRepo) ByID(ctx context.Context, id int64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+" WHERE u.user_id=? LIMIT 1", id))
}

func (r *UserRepo) exists(ctx context.Context, query, arg string) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, query, arg).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepo) UsernameExists(ctx context.Context, userName string) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(1) FROM users WHERE user_name=?", userName)
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(1) FROM users WHERE email=?", email)
}

func (r *UserRepo) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(1) FROM users WHERE phone_number=?", phone)
}

// UpdateProfile rewrites the mutable profile fields of an existing user.
func (r *UserRepo) UpdateProfile(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET first_name=?, last_name=?, user_name=?, email=?, phone_number=?
		 WHERE user_id=?`,
		u.FirstName, u.LastName, u.UserName, u.Email, u.PhoneNumber, u.UserID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRole repoints a user at another role id.
func (r *UserRepo) UpdateRole(ctx context.Context, userID, roleID int64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role_id=? WHERE user_id=?", roleID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user together with their to-do items and refresh tokens,
// all in one transaction.
func (r *UserRepo) Delete(ctx context.Context, userID int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE user_id=?", userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM todo_items WHERE user_id=?", userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE user_id=?", userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (r *UserRepo) queryUsers(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// All returns every user ordered by id.
func (r *UserRepo) All(ctx context.Context) ([]model.User, error) {
	return r.queryUsers(ctx, userSelect+" ORDER BY u.user_id")
}

// AllByRole returns every user holding the named role.
func (r *UserRepo) AllByRole(ctx context.Context, role string) ([]model.User, error) {
	return r.queryUsers(ctx, userSelect+" WHERE r.name=? ORDER BY u.user_id", role)
}
