package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/config"
	"github.com/iliyamo/todo-list-api/internal/middleware"
	"github.com/iliyamo/todo-list-api/internal/model"
	"github.com/iliyamo/todo-list-api/internal/queue"
	"github.com/iliyamo/todo-list-api/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret-not-for-production",
		JWTIssuer:      "todo-list-api",
		JWTAudience:    "todo-list-clients",
		AccessTTLHours: 1,
		RefreshTTLDays: 21,
		HashIterations: 1000,
	}
}

func validSignUp() UserCreateRequest {
	return UserCreateRequest{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		UserName:    "ada_l",
		Email:       "ada@example.com",
		PhoneNumber: "+12025550123",
		Password:    "Sup3rSecret",
	}
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUsers, *fakeTokens, *fakeEvents) {
	t.Helper()
	users := newFakeUsers()
	tokens := newFakeTokens()
	events := &fakeEvents{}
	svc := NewAuthService(testConfig(), users, fakeRoles{}, tokens, events)
	return svc, users, tokens, events
}

func TestSignUpCreatesUserWithBaseRole(t *testing.T) {
	svc, users, _, events := newAuthFixture(t)

	id, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	require.Positive(t, id)

	u, err := users.ByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ada_l", u.UserName)
	assert.Equal(t, "User", u.Role)
	assert.NotEmpty(t, u.Salt)
	assert.NotEqual(t, "Sup3rSecret", u.PasswordHash)
	assert.Equal(t, []string{queue.EventUserRegistered}, events.names())
}

func TestSignUpRejectsDuplicates(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)

	dupUsername := validSignUp()
	dupUsername.Email = "other@example.com"
	dupUsername.PhoneNumber = "+12025550199"
	_, err = svc.SignUp(context.Background(), dupUsername)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.EqualError(t, err, "username already exists")

	dupEmail := validSignUp()
	dupEmail.UserName = "other_user"
	dupEmail.PhoneNumber = "+12025550199"
	_, err = svc.SignUp(context.Background(), dupEmail)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.EqualError(t, err, "email already exists")

	dupPhone := validSignUp()
	dupPhone.UserName = "other_user"
	dupPhone.Email = "other@example.com"
	_, err = svc.SignUp(context.Background(), dupPhone)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.EqualError(t, err, "phone number already exists")
}

func TestSignUpAggregatesValidationFailures(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	req := validSignUp()
	req.UserName = "bad name!"
	req.Password = "alllowercase1"
	_, err := svc.SignUp(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "Username can only contain letters, numbers, and underscores.")
	assert.Contains(t, err.Error(), "Password must contain at least one uppercase letter.")
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _, tokens, _ := newAuthFixture(t)
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "Sup3rSecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 1, resp.Expires)

	claims, err := utils.ParseToken(testConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada_l", claims.UserName)
	assert.Equal(t, "User", claims.Role)

	rec, ok := tokens.get(resp.RefreshToken)
	require.True(t, ok)
	assert.False(t, rec.Revoked)
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), UserLoginRequest{UserName: "nobody", Password: "Sup3rSecret"})
	_, errWrongPw := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "WrongPass1"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.True(t, apperr.Is(errUnknown, apperr.KindUnauthorized))
	assert.True(t, apperr.Is(errWrongPw, apperr.KindUnauthorized))
	// Same message on both paths so usernames cannot be probed.
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, tokens, _ := newAuthFixture(t)
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "Sup3rSecret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The consumed token is revoked, not deleted.
	old, ok := tokens.get(login.RefreshToken)
	require.True(t, ok)
	assert.True(t, old.Revoked)

	// A second exchange with the consumed token must fail.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestRefreshAcceptsExpiredAccessToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "Sup3rSecret"})
	require.NoError(t, err)

	// Sign a token that is already expired but otherwise identical.
	expiredCfg := testConfig()
	expiredCfg.AccessTTLHours = -1
	u, err := svc.users.ByUsername(context.Background(), "ada_l")
	require.NoError(t, err)
	expired, err := utils.NewAccessToken(expiredCfg, u)
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  expired.Token,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshRejectsForgedAccessToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "Sup3rSecret"})
	require.NoError(t, err)

	forgedCfg := testConfig()
	forgedCfg.JWTSecret = "some-other-secret"
	u, err := svc.users.ByUsername(context.Background(), "ada_l")
	require.NoError(t, err)
	forged, err := utils.NewAccessToken(forgedCfg, u)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  forged.Token,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestRefreshScopedToTokenOwner(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)

	other := validSignUp()
	other.UserName = "grace_h"
	other.Email = "grace@example.com"
	other.PhoneNumber = "+12025550177"
	_, err = svc.SignUp(context.Background(), other)
	require.NoError(t, err)

	adaLogin, err := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "Sup3rSecret"})
	require.NoError(t, err)
	graceLogin, err := svc.Login(context.Background(), UserLoginRequest{UserName: "grace_h", Password: "Sup3rSecret"})
	require.NoError(t, err)

	// Grace's access token cannot spend Ada's refresh token.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  graceLogin.AccessToken,
		RefreshToken: adaLogin.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestRefreshRejectsExpiredRefreshToken(t *testing.T) {
	svc, _, tokens, _ := newAuthFixture(t)
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "Sup3rSecret"})
	require.NoError(t, err)

	tokens.expire(login.RefreshToken)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestRefreshReuseRevokesAllWhenEnabled(t *testing.T) {
	users := newFakeUsers()
	tokens := newFakeTokens()
	cfg := testConfig()
	cfg.RefreshReuseRevokesAll = true
	svc := NewAuthService(cfg, users, fakeRoles{}, tokens, nil)

	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	first, err := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "Sup3rSecret"})
	require.NoError(t, err)
	second, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  first.AccessToken,
		RefreshToken: first.RefreshToken,
	})
	require.NoError(t, err)

	// Replaying the consumed token burns the whole chain.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  first.AccessToken,
		RefreshToken: first.RefreshToken,
	})
	require.Error(t, err)

	rec, ok := tokens.get(second.RefreshToken)
	require.True(t, ok)
	assert.True(t, rec.Revoked)
}

// brokenSweepTokens fails the bulk revocation while everything else works.
type brokenSweepTokens struct{ *fakeTokens }

func (b *brokenSweepTokens) RevokeAllForUser(context.Context, int64) error {
	return errors.New("storage offline")
}

func TestRefreshReuseStillRejectedWhenSweepFails(t *testing.T) {
	users := newFakeUsers()
	tokens := &brokenSweepTokens{newFakeTokens()}
	cfg := testConfig()
	cfg.RefreshReuseRevokesAll = true
	svc := NewAuthService(cfg, users, fakeRoles{}, tokens, nil)

	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "Sup3rSecret"})
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)

	// The sweep fails, but the replay is rejected regardless.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

// Full journey: register, log in, bounce off a role-gated route, rotate the
// token pair, and verify the consumed refresh token is dead.
func TestSignUpLoginRefreshJourney(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	cfg := testConfig()

	req := validSignUp()
	req.UserName = "alice"
	req.Password = "Passw0rd1"
	id, err := svc.SignUp(context.Background(), req)
	require.NoError(t, err)
	require.Positive(t, id)

	login, err := svc.Login(context.Background(), UserLoginRequest{UserName: "alice", Password: "Passw0rd1"})
	require.NoError(t, err)

	// A fresh registration holds the base role; an admin-gated route rejects it.
	e := echo.New()
	gated := middleware.JWTAuth(cfg)(middleware.RequireRole(model.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	httpReq := httptest.NewRequest(http.MethodGet, "/api/admin/get-all-users", nil)
	httpReq.Header.Set("Authorization", "Bearer "+login.AccessToken)
	err = gated(e.NewContext(httpReq, httptest.NewRecorder()))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	rotated, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  rotated.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestLogoutIsNotIdempotent(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), UserLoginRequest{UserName: "ada_l", Password: "Sup3rSecret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	err = svc.Logout(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
