// Package validator wraps go-playground/validator with the field rules and
// human-readable messages used across the API. Validation always runs to
// completion across fields; every violation is reported in one aggregated
// ValidationError rather than failing fast on the first field.
package validator

import (
	"errors"
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"

	"github.com/iliyamo/todo-list-api/internal/apperr"
)

// dueDateMargin is the minimum lead time a due date must carry. A task due
// right now is already too late to act on.
const dueDateMargin = 5 * time.Minute

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
)

var validate = func() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	mustRegister(v, "username_chars", func(fl playground.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "phone_number", func(fl playground.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "has_upper", func(fl playground.FieldLevel) bool {
		return upperRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "has_lower", func(fl playground.FieldLevel) bool {
		return lowerRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "has_digit", func(fl playground.FieldLevel) bool {
		return digitRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "future_5m", func(fl playground.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(time.Now().Add(dueDateMargin))
	})
	return v
}()

func mustRegister(v *playground.Validate, tag string, fn playground.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Struct validates s against its tags and returns a ValidationError carrying
// every violation joined with "; ", or nil when the value is valid.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Validation("invalid request")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, messageFor(fe))
	}
	return apperr.Validation("%s", strings.Join(msgs, "; "))
}

func messageFor(fe playground.FieldError) string {
	name := displayName(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required."
	case "max":
		return name + " must not exceed " + fe.Param() + " characters."
	case "min":
		return name + " must be at least " + fe.Param() + " characters long."
	case "email":
		return name + " must be a valid email address."
	case "username_chars":
		return name + " can only contain letters, numbers, and underscores."
	case "phone_number":
		return name + " must be 10 to 15 digits, optionally prefixed with +."
	case "has_upper":
		return name + " must contain at least one uppercase letter."
	case "has_lower":
		return name + " must contain at least one lowercase letter."
	case "has_digit":
		return name + " must contain at least one number."
	case "future_5m":
		return name + " must be more than 5 minutes in the future."
	case "gt":
		return name + " must be greater than " + fe.Param() + "."
	default:
		return name + " is invalid."
	}
}

func displayName(field string) string {
	switch field {
	case "FirstName":
		return "First name"
	case "LastName":
		return "Last name"
	case "UserName":
		return "Username"
	case "PhoneNumber":
		return "Phone number"
	case "DueDate":
		return "Due date"
	case "ToDoItemID":
		return "ToDoItemId"
	default:
		return field
	}
}
