package admin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	t.Parallel()

	transport := newRecordingTransport()
	res := New(transport).Users().Create(context.Background(), func(a *UserCreateAction) {
		a.User("ops", "s3cret")
		a.WithTags("administrator", " ", "monitoring")
	})
	require.False(t, res.HasFaulted())

	call := transport.calls()[0]
	require.Equal(t, "PUT", call.Method)
	require.Equal(t, "api/users/ops", call.Path)

	raw, err := json.Marshal(call.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"password":"s3cret","tags":"administrator,monitoring"}`, string(raw))
}

func TestUserCreateWithHash(t *testing.T) {
	t.Parallel()

	transport := newRecordingTransport()
	res := New(transport).Users().Create(context.Background(), func(a *UserCreateAction) {
		a.User("ops", "")
		a.WithPasswordHash("kI3GCqW5JLMJa4iX1lo7X4D6XbYqlLgxIs30+P6tENUV2POR")
	})
	require.False(t, res.HasFaulted())
}

func TestUserCreateWithoutCredentials(t *testing.T) {
	t.Parallel()

	res := New(refusingTransport(t)).Users().Create(context.Background(), nil)
	require.Equal(t, []ErrorCode{ErrCodeMissingField, ErrCodeMissingField}, codes(res.Errors))
	require.Equal(t, "the username is missing", res.Errors[0].Message)
	require.Equal(t, "the password or password hash is missing", res.Errors[1].Message)
}

func TestUserDelete(t *testing.T) {
	t.Parallel()

	transport := newRecordingTransport()
	res := New(transport).Users().Delete(context.Background(), func(a *UserDeleteAction) { a.User("ops") })
	require.False(t, res.HasFaulted())
	require.Equal(t, Request{Method: "DELETE", Path: "api/users/ops"}, transport.calls()[0])

	missing := New(refusingTransport(t)).Users().Delete(context.Background(), nil)
	require.Equal(t, []ErrorCode{ErrCodeMissingField}, codes(missing.Errors))
}
