// Package validation configures go-playground/validator for the API and
// turns its errors into domain.ValidationError values with readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// New returns a validator that reports fields by their JSON names.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns a *domain.ValidationError listing every
// failing field, or nil.
func Struct(v *validator.Validate, s any) error {
	return translate(v.Struct(s))
}

// Var validates a single value against tag, reporting failures under name.
func Var(v *validator.Validate, name string, value any, tag string) error {
	err := v.Var(value, tag)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, message(name, fe.Tag(), fe.Param()))
		}
		return domain.NewValidationError(msgs...)
	}
	return err
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, message(fe.Field(), fe.Tag(), fe.Param()))
		}
		return domain.NewValidationError(msgs...)
	}
	return err
}

// message converts a single failed rule into a human-readable message.
func message(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "mongodb":
		return field + " must be a valid object id"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, tag)
	}
}
