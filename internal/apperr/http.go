package apperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// response is the JSON body produced for every failed request.
type response struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
}

// HTTPErrorHandler translates typed domain errors into HTTP responses. It is
// installed once on the Echo instance; unclassified errors are logged with
// full context and surfaced as a generic 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		code := statusFor(appErr.Kind)
		_ = c.JSON(code, response{StatusCode: code, Detail: appErr.Detail})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		detail, _ := httpErr.Message.(string)
		if detail == "" {
			detail = http.StatusText(httpErr.Code)
		}
		_ = c.JSON(httpErr.Code, response{StatusCode: httpErr.Code, Detail: detail})
		return
	}

	log.Printf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	_ = c.JSON(http.StatusInternalServerError, response{
		StatusCode: http.StatusInternalServerError,
		Detail:     "internal server error",
	})
}

func statusFor(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden, KindNotAllowed:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
