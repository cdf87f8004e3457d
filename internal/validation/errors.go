// Package validation wraps go-playground/validator with field errors that
// read well on a terminal or in a JSON reply.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MultiError is a collection of field errors (implements error interface)
type MultiError []FieldError

func (m MultiError) Error() string {
	if len(m) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range m {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// New returns a validator that reports fields by their tagKey name
// (for example "yaml" or "json") instead of the Go field name.
func New(tagKey string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get(tagKey), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return v
}

// maxBytes implements the `maxbytes=N` tag: a string of at most N bytes.
// The built-in `max` counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return fl.Field().Kind() == reflect.String && len(fl.Field().String()) <= n
}

// Struct validates s and converts any failure into a MultiError.
func Struct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	if m := FromValidator(err); len(m) > 0 {
		return m
	}
	return err
}

// FromValidator converts go-playground/validator errors to MultiError
func FromValidator(err error) MultiError {
	var fieldErrors MultiError

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fieldErrors
	}

	for _, e := range validationErrs {
		var message string
		switch e.Tag() {
		case "required":
			message = "is required"
		case "min", "gte":
			message = fmt.Sprintf("must be at least %s", e.Param())
		case "max", "lte":
			message = fmt.Sprintf("must be at most %s", e.Param())
		case "maxbytes":
			message = fmt.Sprintf("must be at most %s bytes", e.Param())
		case "hostname_port":
			message = "must be a host:port address"
		default:
			message = "is invalid"
		}

		fieldErrors = append(fieldErrors, FieldError{
			Field:   e.Field(),
			Message: message,
		})
	}

	return fieldErrors
}
