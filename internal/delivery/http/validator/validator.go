// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	"strings"

	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// CustomValidator wraps a single validator instance; struct tag parsing is
// cached, so one instance serves the whole server.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates the echo validator used by every handler's Bind/Validate pair.
func New() *CustomValidator {
	return &CustomValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks the bound request struct and folds violations into a
// field-scoped validation error the error middleware renders as JSON.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs playground.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[strings.ToLower(fieldErr.Field())] = describeViolation(fieldErr)
	}

	return domainerrors.ErrValidationFailed.WithFields(fields)
}

// describeViolation renders a human-readable message for a single violation.
func describeViolation(fieldErr playground.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fieldErr.Param() + " characters"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	default:
		return "failed validation rule '" + fieldErr.Tag() + "'"
	}
}
