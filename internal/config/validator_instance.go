package config

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// report YAML keys rather than Go field names
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "" || name == "-" {
				return strings.ToLower(field.Name)
			}
			return name
		})

		_ = v.RegisterValidation("http_url", func(fl validator.FieldLevel) bool {
			raw := strings.TrimSpace(fl.Field().String())
			if raw == "" {
				return false
			}
			parsed, err := url.Parse(raw)
			if err != nil {
				return false
			}
			scheme := strings.ToLower(parsed.Scheme)
			return (scheme == "http" || scheme == "https") && parsed.Host != ""
		})

		_ = v.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		v.RegisterStructValidation(func(sl validator.StructLevel) {
			retry := sl.Current().Interface().(RetryOptions)
			if retry.Limit > MaxRetryLimit {
				sl.ReportError(retry.Limit, "limit", "Limit", "retry_limit", strconv.Itoa(MaxRetryLimit))
			}
		}, RetryOptions{})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
