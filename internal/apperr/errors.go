// Package apperr defines the typed failures raised by the service layer and
// the single boundary that translates them into HTTP responses. Handlers
// return these errors untouched; no status-code decisions live anywhere else.
package apperr

import "fmt"

// Kind classifies a domain failure.
type Kind int

const (
	// KindValidation is malformed input; the detail carries every field
	// violation joined together.
	KindValidation Kind = iota
	// KindConflict is a uniqueness violation at sign-up.
	KindConflict
	// KindUnauthorized covers bad credentials and invalid/expired/revoked
	// refresh tokens. The detail is deliberately generic so callers cannot
	// tell which check failed.
	KindUnauthorized
	// KindForbidden is a structurally invalid access token on refresh, or a
	// gated route hit with the wrong role.
	KindForbidden
	// KindNotAllowed is a privilege-boundary violation.
	KindNotAllowed
	// KindNotFound references an entity that does not exist.
	KindNotFound
)

// Error is a typed domain failure.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Detail: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error   { return newf(KindValidation, format, args...) }
func Conflict(format string, args ...any) *Error     { return newf(KindConflict, format, args...) }
func Unauthorized(format string, args ...any) *Error { return newf(KindUnauthorized, format, args...) }
func Forbidden(format string, args ...any) *Error    { return newf(KindForbidden, format, args...) }
func NotAllowed(format string, args ...any) *Error   { return newf(KindNotAllowed, format, args...) }
func NotFound(format string, args ...any) *Error     { return newf(KindNotFound, format, args...) }

// Is reports whether err is an *Error of the given kind.
func Is(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}
