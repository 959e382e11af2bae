package dto

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inkpress/identity-service/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest validates a request DTO and maps failures to a domain error.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrInvalidJSON(err)
	}

	messages := make([]string, 0, len(verrs))
	var field string
	for _, fe := range verrs {
		if field == "" {
			field = strings.ToLower(fe.Field())
		}
		messages = append(messages, formatFieldError(fe))
	}
	return domain.ErrInvalidField(field, strings.Join(messages, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
