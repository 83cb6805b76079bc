package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var roleCodePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so messages match the API fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("role_code", func(fl validator.FieldLevel) bool {
		return roleCodePattern.MatchString(fl.Field().String())
	})
	return v
}

// validationError turns the first validator failure into an ErrValidation
// with a readable message. field overrides the reported name for Var checks.
func validationError(err error, field string) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := ve[0]
	if field == "" {
		field = fe.Field()
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "email":
		msg = field + " must be a valid email address"
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "role_code":
		msg = field + " must be like ADMIN or SUPPORT_ROLE"
	default:
		msg = field + " is invalid"
	}
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func checkStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return validationError(err, "")
	}
	return nil
}

func checkVar(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return validationError(err, field)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
