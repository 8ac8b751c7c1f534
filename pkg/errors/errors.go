// Package errors holds the typed errors reported while loading client
// settings and running commands.
package errors

import (
	"fmt"
	"strings"
)

// ParseError reports a settings file that could not be read or decoded.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a settings value that failed validation. Field
// uses the YAML path, e.g. "credentials.username".
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// OperationError reports a management operation that returned a faulted
// result. Errs holds every reported failure.
type OperationError struct {
	Operation string
	Errs      []error
}

// NewOperationError constructs an OperationError for the named operation.
func NewOperationError(operation string, errs ...error) error {
	return &OperationError{Operation: operation, Errs: errs}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("operation %s failed", e.Operation)
	}
	return fmt.Sprintf("operation %s failed: %s", e.Operation, strings.Join(msgs, "; "))
}

// Unwrap exposes the reported failures to errors.Is and errors.As.
func (e *OperationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return e.Errs
}
