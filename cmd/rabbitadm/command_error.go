package main

import (
	"fmt"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
	rerrors "github.com/alexisbeaulieu97/rabbitadm/pkg/errors"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// faultedError turns the errors of a faulted result into a command error.
func faultedError(operation, context string, errs []*admin.Error) error {
	causes := make([]error, 0, len(errs))
	for _, err := range errs {
		causes = append(causes, err)
	}
	return newCommandError(operation, context, rerrors.NewOperationError(operation, causes...), suggestionFor(errs))
}

func suggestionFor(errs []*admin.Error) string {
	switch {
	case admin.HasCode(errs, admin.ErrCodeDefaultVHost):
		return "The default virtual host cannot be deleted. Pass the name of another virtual host."
	case admin.HasCode(errs, admin.ErrCodeTransport):
		return "Check that the management API is reachable and that the credentials have the administrator tag."
	case admin.HasCode(errs, admin.ErrCodeCancelled):
		return "The command was interrupted before any request was sent. Run it again."
	default:
		return "Check the command arguments and run with --help to see the accepted flags."
	}
}
