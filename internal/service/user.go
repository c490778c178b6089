package service

import (
	"context"
	"errors"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/model"
	"github.com/iliyamo/todo-list-api/internal/queue"
	"github.com/iliyamo/todo-list-api/internal/repository"
	"github.com/iliyamo/todo-list-api/internal/validator"
)

// UserService covers user administration and profile management.
type UserService struct {
	users  UserStore
	roles  RoleStore
	events EventPublisher
}

func NewUserService(users UserStore, roles RoleStore, events EventPublisher) *UserService {
	return &UserService{users: users, roles: roles, events: events}
}

// AllUsers lists every user.
func (s *UserService) AllUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}
	return toUserViews(users), nil
}

// UsersByRole lists every user holding the named role.
func (s *UserService) UsersByRole(ctx context.Context, role string) ([]UserView, error) {
	users, err := s.users.AllByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return toUserViews(users), nil
}

// GetUser returns one user's public projection.
func (s *UserService) GetUser(ctx context.Context, userID int64) (UserView, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserView{}, apperr.NotFound("user with id %d not found", userID)
		}
		return UserView{}, err
	}
	return toUserView(u), nil
}

// UpdateUserRole repoints a user at the named role. Route-level gating
// restricts this to SuperAdmin.
func (s *UserService) UpdateUserRole(ctx context.Context, userID int64, roleName string) error {
	roleID, err := s.roles.IDByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("role %q not found", roleName)
		}
		return err
	}
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user with id %d not found", userID)
		}
		return err
	}
	if err := s.users.UpdateRole(ctx, userID, roleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user with id %d not found", userID)
		}
		return err
	}
	u.Role = roleName
	publish(ctx, s.events, queue.EventUserRoleChanged, u)
	return nil
}

// DeleteUser removes a user and everything they own. An Admin caller may
// only remove plain Users; privileged accounts can only be removed by a
// SuperAdmin. This asymmetry is a deliberate privilege boundary.
func (s *UserService) DeleteUser(ctx context.Context, userID int64, callerRole string) error {
	target, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user with id %d not found", userID)
		}
		return err
	}
	if callerRole != model.RoleSuperAdmin && target.Role != model.RoleUser {
		return apperr.NotAllowed("Admin cannot delete Admin or SuperAdmin")
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user with id %d not found", userID)
		}
		return err
	}
	publish(ctx, s.events, queue.EventUserDeleted, target)
	return nil
}

// UpdateProfile rewrites the calling user's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req UserUpdateRequest) error {
	if err := validator.Struct(req); err != nil {
		return err
	}
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user with id %d not found", userID)
		}
		return err
	}
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.UserName = req.UserName
	u.Email = req.Email
	u.PhoneNumber = req.PhoneNumber
	if err := s.users.UpdateProfile(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperr.Conflict("username, email or phone number already exists")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user with id %d not found", userID)
		}
		return err
	}
	return nil
}

func toUserViews(users []model.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	return views
}
