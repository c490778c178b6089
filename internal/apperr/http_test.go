package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fire(t *testing.T, err error) (int, response) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(err, c)

	var body response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHTTPErrorHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("already exists"), http.StatusConflict},
		{Unauthorized("nope"), http.StatusUnauthorized},
		{Forbidden("no access"), http.StatusForbidden},
		{NotAllowed("boundary"), http.StatusForbidden},
		{NotFound("missing"), http.StatusNotFound},
	}
	for _, tc := range cases {
		code, body := fire(t, tc.err)
		assert.Equal(t, tc.want, code)
		assert.Equal(t, tc.want, body.StatusCode)
		assert.Equal(t, tc.err.Error(), body.Detail)
	}
}

func TestHTTPErrorHandlerHidesInternalDetail(t *testing.T) {
	code, body := fire(t, errors.New("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body.Detail)
}

func TestHTTPErrorHandlerPassesEchoErrors(t *testing.T) {
	code, body := fire(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "Method Not Allowed", body.Detail)
}
