package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tmarchetti/taskvault-api/internal/domain"
)

// newValidator builds the request validator, configured to report wire field
// names (JSON tags) rather than Go struct field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRequest validates a decoded request payload and converts any
// struct-tag failures into the field/message list the 422 body uses.
// Returns nil when the payload is valid.
func checkRequest(v *validator.Validate, req any) *domain.ValidationErrors {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	verrs := domain.NewValidationErrors()

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verrs.Add("request", "is invalid")
		return verrs
	}

	for _, fe := range fieldErrs {
		verrs.Add(fe.Field(), fieldErrorMessage(fe))
	}
	return verrs
}

// fieldErrorMessage maps a validation tag to a user-facing message.
func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "eqfield":
		return "does not match"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "is invalid"
	}
}
