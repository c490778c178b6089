package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/todo-list-api/internal/model"
)

// RoleRepo reads the static user_roles reference data.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// All returns every role.
func (r *RoleRepo) All(ctx context.Context) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, description FROM user_roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// IDByName resolves a role name to its id.
func (r *RoleRepo) IDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM user_roles WHERE name=? LIMIT 1", name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return id, err
}
