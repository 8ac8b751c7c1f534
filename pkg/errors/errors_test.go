package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("rabbitadm.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "rabbitadm.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: rabbitadm.yaml:12: unexpected token", err.Error())

	noLine := NewParseError("rabbitadm.yaml", 0, underlying)
	require.Equal(t, "parse error: rabbitadm.yaml: unexpected token", noLine.Error())
}

func TestValidationErrorCarriesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("credentials.username", "is required", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "credentials.username", validationErr.Field)
	require.Equal(t, "validation error: credentials.username: is required", err.Error())
}

func TestOperationErrorJoinsFailures(t *testing.T) {
	t.Parallel()

	first := stdErrors.New("the queue name is missing")
	second := stdErrors.New("the virtual host name is missing")
	err := NewOperationError("queue create", first, second)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, "queue create", opErr.Operation)
	require.True(t, stdErrors.Is(err, second))
	require.Equal(t, "operation queue create failed: the queue name is missing; the virtual host name is missing", err.Error())

	require.Equal(t, "operation vhost list failed", NewOperationError("vhost list").Error())
}

func TestNilReceivers(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var validationErr *ValidationError
	var opErr *OperationError

	require.Empty(t, parseErr.Error())
	require.Empty(t, validationErr.Error())
	require.Empty(t, opErr.Error())
	require.Nil(t, parseErr.Unwrap())
	require.Nil(t, opErr.Unwrap())
}
