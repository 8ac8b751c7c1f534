package admin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParameterCreate(t *testing.T) {
	t.Parallel()

	transport := newRecordingTransport()
	res := New(transport).Parameters().Create(context.Background(), func(a *ParameterCreateAction) {
		a.Component("federation-upstream")
		a.VirtualHost("/")
		a.Parameter("east", String("amqp://east"))
	})
	require.False(t, res.HasFaulted())

	call := transport.calls()[0]
	require.Equal(t, "PUT", call.Method)
	require.Equal(t, "api/parameters/federation-upstream/%2f/east", call.Path)

	raw, err := json.Marshal(call.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"component":"federation-upstream","vhost":"/","name":"east","value":"amqp://east"}`, string(raw))
}

func TestParameterCreateWithoutRequiredFields(t *testing.T) {
	t.Parallel()

	res := New(refusingTransport(t)).Parameters().Create(context.Background(), nil)
	require.Equal(t, []ErrorCode{ErrCodeMissingField, ErrCodeMissingField, ErrCodeMissingField, ErrCodeMissingField}, codes(res.Errors))
	require.Equal(t, "the parameter value is missing", res.Errors[3].Message)
}
