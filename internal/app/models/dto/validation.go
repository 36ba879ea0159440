package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts binding and validation failures into an
// ErrorDetail with a readable message for the first failing field
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return NewErrorDetail(ErrorCodeValidationFailed, formatFieldError(first)).
			WithField(first.Field())
	}

	return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").
		WithDetails(err.Error())
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
