package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// FieldMessage is a single field level validation failure
type FieldMessage struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// FieldMessages flattens validator errors into caller facing messages.
// It returns nil when err carries no field errors.
func FieldMessages(err error) []FieldMessage {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	messages := make([]FieldMessage, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, FieldMessage{
			Field: e.Field(),
			Error: formatValidationError(e),
		})
	}
	return messages
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	case "passwordbytes":
		return fmt.Sprintf("Ensure this field has no more than %d bytes.", PasswordMaxBytes)
	case "studentid":
		return "Enter a valid student ID consisting of letters, numbers, underscores or hyphens (max 32)."
	case "oneof":
		return "Must be one of: " + e.Param()
	default:
		return "Validation failed on rule: " + e.Tag()
	}
}
