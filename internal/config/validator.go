package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	adminerrors "github.com/alexisbeaulieu97/rabbitadm/pkg/errors"
)

// ValidateSettings performs schema validation on the settings.
func ValidateSettings(settings *Settings) error {
	if settings == nil {
		return adminerrors.NewValidationError("settings", "settings are nil", nil)
	}

	if err := validatorInstance().Struct(settings); err != nil {
		return convertValidationError(err)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		field := yamlishFieldName(ve)
		return adminerrors.NewValidationError(field, describe(ve), err)
	}

	return adminerrors.NewValidationError("settings", err.Error(), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "not_blank":
		return "is required"
	case "http_url":
		return "must be an http or https URL with a host"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "retry_limit":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min", "max":
		return fmt.Sprintf("failed validation for tag '%s=%s'", fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}

// yamlishFieldName drops the root type from the namespace, leaving the YAML
// path such as "credentials.username".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
