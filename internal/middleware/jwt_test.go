package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/config"
	"github.com/iliyamo/todo-list-api/internal/model"
	"github.com/iliyamo/todo-list-api/internal/utils"
)

func gateConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret-not-for-production",
		JWTIssuer:      "todo-list-api",
		JWTAudience:    "todo-list-clients",
		AccessTTLHours: 1,
	}
}

func gateContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestJWTAuthAdmitsValidToken(t *testing.T) {
	cfg := gateConfig()
	tok, err := utils.NewAccessToken(cfg, model.User{
		UserID:   7,
		UserName: "ada_l",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	c := gateContext("Bearer " + tok.Token)
	called := false
	handler := JWTAuth(cfg)(func(c echo.Context) error {
		called = true
		return nil
	})
	require.NoError(t, handler(c))
	assert.True(t, called)

	id, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, model.RoleAdmin, Role(c))

	claims, ok := Claims(c)
	assert.True(t, ok)
	assert.Equal(t, "ada_l", claims.UserName)
}

func TestJWTAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	cfg := gateConfig()
	handler := JWTAuth(cfg)(func(c echo.Context) error { return nil })

	for _, header := range []string{"", "Basic abc123", "bearer lowercase"} {
		err := handler(gateContext(header))
		require.Error(t, err, "header %q", header)
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	cfg := gateConfig()
	expiredCfg := cfg
	expiredCfg.AccessTTLHours = -1
	tok, err := utils.NewAccessToken(expiredCfg, model.User{UserID: 7, Role: model.RoleUser})
	require.NoError(t, err)

	handler := JWTAuth(cfg)(func(c echo.Context) error { return nil })
	err = handler(gateContext("Bearer " + tok.Token))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(model.RoleAdmin, model.RoleSuperAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	allowed := gateContext("")
	allowed.Set(ctxRole, model.RoleAdmin)
	assert.NoError(t, handler(allowed))

	denied := gateContext("")
	denied.Set(ctxRole, model.RoleUser)
	err := handler(denied)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	// No role in context at all, e.g. gate never ran.
	bare := gateContext("")
	err = handler(bare)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}
