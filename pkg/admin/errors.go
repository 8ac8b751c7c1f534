package admin

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the category of a validation or transport failure.
type ErrorCode string

const (
	ErrCodeMissingField      ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeDuplicateArgument ErrorCode = "DUPLICATE_ARGUMENT"
	ErrCodeConflictArgument  ErrorCode = "CONFLICTING_ARGUMENT"
	ErrCodeDependentMissing  ErrorCode = "DEPENDENT_ARGUMENT_MISSING"
	ErrCodeInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
	ErrCodeDefaultVHost      ErrorCode = "DEFAULT_VHOST_PROTECTED"
	ErrCodeTransport         ErrorCode = "TRANSPORT_FAILURE"
	ErrCodeCancelled         ErrorCode = "CANCELLED"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// Error describes a single failure carried by a faulted Result. Errors are
// treated as immutable once constructed.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *Error with the same code and message.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// WithContext clones the error with additional contextual metadata.
func (e *Error) WithContext(ctx map[string]interface{}) *Error {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Context: merged,
	}
}

func newError(code ErrorCode, message string, cause error, context map[string]interface{}) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

func newMissingFieldError(field, message string) *Error {
	return newError(ErrCodeMissingField, message, nil, map[string]interface{}{
		"field": field,
	})
}

func newDuplicateArgumentError(key string) *Error {
	return newError(ErrCodeDuplicateArgument, fmt.Sprintf("argument '%s' has already been set", key), nil, map[string]interface{}{
		"argument": key,
	})
}

func newConflictingArgumentError(key, other string) *Error {
	return newError(ErrCodeConflictArgument, fmt.Sprintf("argument '%s' conflicts with argument '%s'", key, other), nil, map[string]interface{}{
		"argument":    key,
		"conflicting": other,
	})
}

func newDependentMissingError(key, value, requires string) *Error {
	return newError(ErrCodeDependentMissing,
		fmt.Sprintf("argument '%s' has been set to %s, which means that argument '%s' has to also be set", key, value, requires),
		nil, map[string]interface{}{
			"argument": key,
			"requires": requires,
		})
}

func newInvalidArgumentError(field, message string) *Error {
	return newError(ErrCodeInvalidArgument, message, nil, map[string]interface{}{
		"field": field,
	})
}

func newCancelledError(cause error) *Error {
	return newError(ErrCodeCancelled, "operation cancelled before dispatch", cause, nil)
}

func newTransportError(message string, cause error, context map[string]interface{}) *Error {
	return newError(ErrCodeTransport, message, cause, context)
}

// HasCode reports whether any of the errors carries the supplied code.
func HasCode(errs []*Error, code ErrorCode) bool {
	for _, err := range errs {
		if err != nil && err.Code == code {
			return true
		}
	}
	return false
}
