package service

import (
	"context"

	"github.com/iliyamo/todo-list-api/internal/model"
)

// RoleService reads the static role set.
type RoleService struct {
	roles RoleStore
}

func NewRoleService(roles RoleStore) *RoleService { return &RoleService{roles: roles} }

// AllRoles lists every role.
func (s *RoleService) AllRoles(ctx context.Context) ([]model.Role, error) {
	return s.roles.All(ctx)
}
