package admin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueDeleteForwardsPathAndConditions(t *testing.T) {
	t.Parallel()

	transport := newRecordingTransport()
	res := New(transport).Queues().Delete(context.Background(), func(a *QueueDeleteAction) {
		a.Queue("orders")
		a.Targeting(func(t *QueueTarget) { t.VirtualHost("prod") })
		a.WithConditions(func(c *QueueDeleteConditions) {
			c.HasNoConsumers()
			c.IsEmpty()
		})
	})

	require.False(t, res.HasFaulted())
	calls := transport.calls()
	require.Len(t, calls, 1)
	require.Equal(t, Request{
		Method: "DELETE",
		Path:   "api/queues/prod/orders",
		Query:  "if-unused=true&if-empty=true",
	}, calls[0])
}

func TestQueueDeleteConditionQueries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		apply func(*QueueDeleteConditions)
		want  string
	}{
		{"none", func(*QueueDeleteConditions) {}, ""},
		{"unused", func(c *QueueDeleteConditions) { c.HasNoConsumers() }, "if-unused=true"},
		{"empty", func(c *QueueDeleteConditions) { c.IsEmpty() }, "if-empty=true"},
		{"empty then unused", func(c *QueueDeleteConditions) {
			c.IsEmpty()
			c.HasNoConsumers()
		}, "if-unused=true&if-empty=true"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			transport := newRecordingTransport()
			New(transport).Queues().Delete(context.Background(), func(a *QueueDeleteAction) {
				a.Queue("orders")
				a.Targeting(func(t *QueueTarget) { t.VirtualHost("prod") })
				a.WithConditions(tt.apply)
			})

			calls := transport.calls()
			require.Len(t, calls, 1)
			require.Equal(t, tt.want, calls[0].Query)
		})
	}
}

func TestQueueOperationsWithoutRequiredFields(t *testing.T) {
	t.Parallel()

	client := New(refusingTransport(t))
	ctx := context.Background()
	want := []string{"the queue name is missing", "the virtual host name is missing"}

	results := []Result[Empty]{
		client.Queues().Create(ctx, func(*QueueCreateAction) {}),
		client.Queues().Delete(ctx, func(*QueueDeleteAction) {}),
		client.Queues().Empty(ctx, nil),
	}
	for _, res := range results {
		require.True(t, res.HasFaulted())
		require.Equal(t, []ErrorCode{ErrCodeMissingField, ErrCodeMissingField}, codes(res.Errors))
		require.Equal(t, want, []string{res.Errors[0].Message, res.Errors[1].Message})
	}

	peek := client.Queues().Peek(ctx, nil)
	require.True(t, peek.HasFaulted())
	require.Nil(t, peek.Data)
	require.Len(t, peek.Errors, 2)
}

func TestQueueCreateBlankNameIsMissing(t *testing.T) {
	t.Parallel()

	res := New(refusingTransport(t)).Queues().Create(context.Background(), func(a *QueueCreateAction) {
		a.Queue("   ")
		a.Targeting(func(t *QueueTarget) { t.VirtualHost("prod") })
	})
	require.Equal(t, []ErrorCode{ErrCodeMissingField}, codes(res.Errors))
	require.Equal(t, "queue name", res.Errors[0].Context["field"])
}

func TestQueueCreateSendsDefinition(t *testing.T) {
	t.Parallel()

	transport := newRecordingTransport()
	res := New(transport).Queues().Create(context.Background(), func(a *QueueCreateAction) {
		a.Queue("orders")
		a.Configure(func(c *QueueConfigurator) {
			c.IsDurable()
			c.WithArguments(func(args *QueueArguments) {
				args.SetQueueExpiration(1000)
				args.SetPerQueuedMessageExpiration(2000)
				args.SetDeadLetterExchange(" dlx ")
				args.SetDeadLetterExchangeRoutingKey("dead")
				args.SetAlternateExchange("alt")
				args.SetMaxLength(10)
				args.SetQueueMode(QueueModeLazy)
			})
		})
		a.Targeting(func(t *QueueTarget) {
			t.VirtualHost("/")
			t.Node("rabbit@node1")
		})
	})
	require.False(t, res.HasFaulted())

	calls := transport.calls()
	require.Len(t, calls, 1)
	require.Equal(t, "PUT", calls[0].Method)
	require.Equal(t, "api/queues/%2f/orders", calls[0].Path)

	raw, err := json.Marshal(calls[0].Body)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"node": "rabbit@node1",
		"durable": true,
		"auto_delete": false,
		"arguments": {
			"x-expires": 1000,
			"x-message-ttl": 2000,
			"x-dead-letter-exchange": "dlx",
			"x-dead-letter-routing-key": "dead",
			"alternate-exchange": "alt",
			"x-max-length": 10,
			"x-queue-mode": "lazy"
		}
	}`, string(raw))
}

func TestQueueCreateDuplicateArgumentFaults(t *testing.T) {
	t.Parallel()

	res := New(refusingTransport(t)).Queues().Create(context.Background(), func(a *QueueCreateAction) {
		a.Queue("orders")
		a.Targeting(func(t *QueueTarget) { t.VirtualHost("prod") })
		a.Configure(func(c *QueueConfigurator) {
			c.WithArguments(func(args *QueueArguments) {
				args.SetMaxLength(10)
				args.Set("x-max-length", Int(20))
			})
		})
	})

	require.Equal(t, []ErrorCode{ErrCodeDuplicateArgument}, codes(res.Errors))
	require.Equal(t, Empty{}, res.Data)
}

func TestQueueCreateActionIsSealedOnce(t *testing.T) {
	t.Parallel()

	var captured *QueueCreateAction
	New(newRecordingTransport()).Queues().Create(context.Background(), func(a *QueueCreateAction) {
		require.Empty(t, a.Name(), "accessors are empty until sealed")
		a.Queue("orders")
		a.Targeting(func(t *QueueTarget) { t.VirtualHost("prod") })
		a.Configure(func(c *QueueConfigurator) {
			c.WithArguments(func(args *QueueArguments) { args.SetMaxLength(5) })
		})
		captured = a
	})

	require.Equal(t, "orders", captured.Name())
	require.Equal(t, "prod", captured.VirtualHost())

	args := captured.Definition().Arguments()
	args["x-max-length"] = Int(99)
	require.Equal(t, Int(5), captured.Definition().Arguments()["x-max-length"])

	require.Len(t, append(captured.Errors(), newCancelledError(nil)), 1)
	require.Empty(t, captured.Errors())
}

func TestQueueActionsAreIndependent(t *testing.T) {
	t.Parallel()

	client := New(newRecordingTransport())
	ctx := context.Background()

	first := client.Queues().Create(ctx, func(a *QueueCreateAction) {
		a.Queue("a")
		a.Targeting(func(t *QueueTarget) { t.VirtualHost("prod") })
		a.Configure(func(c *QueueConfigurator) {
			c.WithArguments(func(args *QueueArguments) { args.SetMaxLength(1) })
		})
	})
	second := client.Queues().Create(ctx, func(a *QueueCreateAction) {
		a.Queue("b")
		a.Targeting(func(t *QueueTarget) { t.VirtualHost("prod") })
		a.Configure(func(c *QueueConfigurator) {
			c.WithArguments(func(args *QueueArguments) { args.SetMaxLength(2) })
		})
	})

	require.False(t, first.HasFaulted())
	require.False(t, second.HasFaulted(), "arguments must not leak between calls")
}

func TestQueueEmptyPath(t *testing.T) {
	t.Parallel()

	transport := newRecordingTransport()
	res := New(transport).Queues().Empty(context.Background(), func(a *QueueEmptyAction) {
		a.Queue("orders")
		a.Targeting(func(t *QueueTarget) { t.VirtualHost("team/a") })
	})
	require.False(t, res.HasFaulted())
	require.Equal(t, Request{Method: "DELETE", Path: "api/queues/team%2fa/orders/contents"}, transport.calls()[0])
}

func TestQueuePeek(t *testing.T) {
	t.Parallel()

	transport := newRecordingTransport()
	transport.respond = func(req Request) (Response, error) {
		return jsonResponse(t, []map[string]interface{}{
			{"payload": "hello", "payload_encoding": "string", "routing_key": "orders", "redelivered": true},
		}), nil
	}

	res := New(transport).Queues().Peek(context.Background(), func(a *QueuePeekAction) {
		a.Queue("orders")
		a.Targeting(func(t *QueueTarget) { t.VirtualHost("prod") })
		a.Configure(func(c *PeekConfigurator) {
			c.Take(5)
			c.Encoding(PeekEncodingBase64)
		})
	})

	require.True(t, res.HasResult())
	require.Equal(t, "hello", res.Data[0].Payload)
	require.True(t, res.Data[0].Redelivered)

	call := transport.calls()[0]
	require.Equal(t, "POST", call.Method)
	require.Equal(t, "api/queues/prod/orders/get", call.Path)

	raw, err := json.Marshal(call.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"count":5,"ackmode":"ack_requeue_true","encoding":"base64","truncate":50000}`, string(raw))
}

func TestQueuePeekRejectsBadOptions(t *testing.T) {
	t.Parallel()

	res := New(refusingTransport(t)).Queues().Peek(context.Background(), func(a *QueuePeekAction) {
		a.Queue("orders")
		a.Targeting(func(t *QueueTarget) { t.VirtualHost("prod") })
		a.Configure(func(c *PeekConfigurator) {
			c.Take(0)
			c.AckMode("keep")
			c.Encoding("hex")
		})
	})

	require.Equal(t, []ErrorCode{ErrCodeInvalidArgument, ErrCodeInvalidArgument, ErrCodeInvalidArgument}, codes(res.Errors))
}

func TestQueueIdentifiersAreTrimmedAndEscapedOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		vhost string
		queue string
		want  string
	}{
		{" prod ", " orders ", "api/queues/prod/orders"},
		{"%2f", "q", "api/queues/%2f/q"},
		{" / ", "q", "api/queues/%2f/q"},
	}

	for _, tt := range tests {
		transport := newRecordingTransport()
		res := New(transport).Queues().Empty(context.Background(), func(a *QueueEmptyAction) {
			a.Queue(tt.queue)
			a.Targeting(func(t *QueueTarget) { t.VirtualHost(tt.vhost) })
		})
		require.False(t, res.HasFaulted(), tt.vhost)

		calls := transport.calls()
		require.Len(t, calls, 1)
		require.Equal(t, tt.want+"/contents", calls[0].Path, tt.vhost)
	}
}
