package admin

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures the validator shared by every action. The
// "present" tag rejects empty and whitespace-only strings.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			if name := field.Tag.Get("field"); name != "" {
				return name
			}
			return strings.ToLower(field.Name)
		})

		_ = v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		validateInst = v
	})

	return validateInst
}

// requiredFieldErrors checks target's struct tags and reports one
// MissingRequiredField error per failing field. Every field is checked.
func requiredFieldErrors(target interface{}) []*Error {
	err := validatorInstance().Struct(target)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []*Error{newError(ErrCodeInternal, "required field check failed", err, nil)}
	}

	out := make([]*Error, 0, len(ves))
	for _, fe := range ves {
		out = append(out, newMissingFieldError(fe.Field(), fmt.Sprintf("the %s is missing", fe.Field())))
	}
	return out
}

// collect is the single aggregation point used by every operation: it unions
// required-field errors for target with any additional error groups and
// drops duplicates.
func collect(target interface{}, groups ...[]*Error) []*Error {
	errs := requiredFieldErrors(target)
	for _, group := range groups {
		errs = append(errs, group...)
	}
	return dedupe(errs)
}
