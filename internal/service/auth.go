package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/config"
	"github.com/iliyamo/todo-list-api/internal/model"
	"github.com/iliyamo/todo-list-api/internal/queue"
	"github.com/iliyamo/todo-list-api/internal/repository"
	"github.com/iliyamo/todo-list-api/internal/utils"
	"github.com/iliyamo/todo-list-api/internal/validator"
)

// The login failure message is shared by the unknown-username and the
// wrong-password paths so callers cannot probe which usernames exist. The
// refresh failure message likewise covers not-found, revoked and expired.
const (
	msgBadCredentials = "invalid username or password"
	msgBadRefresh     = "invalid or expired refresh token"
)

// AuthService orchestrates sign-up, login, refresh and logout.
type AuthService struct {
	cfg    config.Config
	users  UserStore
	roles  RoleStore
	tokens TokenStore
	events EventPublisher
}

func NewAuthService(cfg config.Config, users UserStore, roles RoleStore, tokens TokenStore, events EventPublisher) *AuthService {
	return &AuthService{cfg: cfg, users: users, roles: roles, tokens: tokens, events: events}
}

// SignUp validates the payload, rejects duplicate username/email/phone,
// persists the user with the base User role, and returns the new id. No
// token is issued; the client logs in separately.
func (s *AuthService) SignUp(ctx context.Context, req UserCreateRequest) (int64, error) {
	if err := validator.Struct(req); err != nil {
		return 0, err
	}

	if taken, err := s.users.UsernameExists(ctx, req.UserName); err != nil {
		return 0, err
	} else if taken {
		return 0, apperr.Conflict("username already exists")
	}
	if taken, err := s.users.EmailExists(ctx, req.Email); err != nil {
		return 0, err
	} else if taken {
		return 0, apperr.Conflict("email already exists")
	}
	if taken, err := s.users.PhoneExists(ctx, req.PhoneNumber); err != nil {
		return 0, err
	} else if taken {
		return 0, apperr.Conflict("phone number already exists")
	}

	roleID, err := s.roles.IDByName(ctx, model.RoleUser)
	if err != nil {
		return 0, err
	}

	salt := utils.NewSalt()
	u := model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		UserName:     req.UserName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: utils.HashPassword(req.Password, salt, s.cfg.HashIterations),
		Salt:         salt,
		RoleID:       roleID,
		Role:         model.RoleUser,
	}
	id, err := s.users.Insert(ctx, &u)
	if err != nil {
		// Lost a race with a concurrent sign-up past the pre-checks.
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, apperr.Conflict("username, email or phone number already exists")
		}
		return 0, err
	}
	u.UserID = id
	publish(ctx, s.events, queue.EventUserRegistered, u)
	return id, nil
}

// Login verifies the credentials and returns a fresh access/refresh pair.
func (s *AuthService) Login(ctx context.Context, req UserLoginRequest) (LoginResponse, error) {
	if err := validator.Struct(req); err != nil {
		return LoginResponse{}, err
	}

	u, err := s.users.ByUsername(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResponse{}, apperr.Unauthorized(msgBadCredentials)
		}
		return LoginResponse{}, err
	}
	if !utils.VerifyPassword(req.Password, u.Salt, u.PasswordHash, s.cfg.HashIterations) {
		return LoginResponse{}, apperr.Unauthorized(msgBadCredentials)
	}
	return s.issuePair(ctx, u)
}

// Refresh exchanges an expired-or-valid access token plus a live refresh
// token for a new pair. The presented refresh token is consumed: it is
// revoked with a conditional update before the new pair is issued, so two
// concurrent exchanges of the same token cannot both succeed.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (LoginResponse, error) {
	if err := validator.Struct(req); err != nil {
		return LoginResponse{}, err
	}

	claims, err := utils.ParseExpiredToken(s.cfg, req.AccessToken)
	if err != nil {
		return LoginResponse{}, apperr.Forbidden("invalid access token")
	}

	rec, err := s.tokens.Find(ctx, req.RefreshToken, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResponse{}, apperr.Unauthorized(msgBadRefresh)
		}
		return LoginResponse{}, err
	}
	if rec.Revoked {
		// A revoked token showing up again means the rotating chain leaked.
		// The stricter policy treats the whole session as compromised. The
		// request is rejected either way, so a failed sweep is logged rather
		// than surfaced.
		if s.cfg.RefreshReuseRevokesAll {
			if err := s.tokens.RevokeAllForUser(ctx, claims.UserID); err != nil {
				log.Printf("auth: revoking all tokens for user %d failed: %v", claims.UserID, err)
			}
		}
		return LoginResponse{}, apperr.Unauthorized(msgBadRefresh)
	}
	if time.Now().UTC().After(rec.ExpiresAt) {
		return LoginResponse{}, apperr.Unauthorized(msgBadRefresh)
	}

	ok, err := s.tokens.Revoke(ctx, req.RefreshToken)
	if err != nil {
		return LoginResponse{}, err
	}
	if !ok {
		return LoginResponse{}, apperr.Unauthorized(msgBadRefresh)
	}

	u, err := s.users.ByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResponse{}, apperr.Unauthorized(msgBadRefresh)
		}
		return LoginResponse{}, err
	}
	return s.issuePair(ctx, u)
}

// Logout deletes the refresh token record. An unknown token fails with
// not-found; a repeated logout with the same token therefore fails too.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	ok, err := s.tokens.Delete(ctx, refreshToken)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("refresh token not found")
	}
	return nil
}

func (s *AuthService) issuePair(ctx context.Context, u model.User) (LoginResponse, error) {
	access, err := utils.NewAccessToken(s.cfg, u)
	if err != nil {
		return LoginResponse{}, err
	}
	refresh, err := utils.NewRefreshToken()
	if err != nil {
		return LoginResponse{}, err
	}
	rec := model.RefreshToken{
		UserID:    u.UserID,
		Token:     refresh,
		ExpiresAt: time.Now().UTC().AddDate(0, 0, s.cfg.RefreshTTLDays),
	}
	if err := s.tokens.Insert(ctx, &rec); err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		AccessToken:  access.Token,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		Expires:      s.cfg.AccessTTLHours,
	}, nil
}
