package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf, Name: "rabbitadm"})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"resource": "queues"})
	log.Info(context.Background(), "sent request", "vhost", "prod", "attempt", 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "sent request", entry["message"])
	require.Equal(t, "queues", entry["resource"])
	require.Equal(t, "prod", entry["vhost"])
	require.Equal(t, float64(1), entry["attempt"])
	require.Equal(t, "rabbitadm", entry["logger"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug(context.Background(), "this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log = log.With("vhost", "prod", 42, "dropped")
	ctx := WithCorrelationID(context.Background(), "abc-123")
	log.Error(ctx, "failed", "error", errors.New("boom"), "dangling")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "failed", entry["message"])
	require.Equal(t, "prod", entry["vhost"])
	require.Equal(t, "boom", entry["error"])
	require.Equal(t, "abc-123", entry["correlation_id"])
	require.NotContains(t, entry, "dangling")
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "verbose"})
	require.Error(t, err)
}

func TestLoggerHumanReadable(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{HumanReadable: true, Writer: buf})
	require.NoError(t, err)

	log.Warn(context.Background(), "retrying", "attempt", 2)
	require.Contains(t, buf.String(), "retrying")
	require.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	require.NotPanics(t, func() {
		log.Info(context.Background(), "ignored")
		require.Nil(t, log.With("k", "v"))
		require.Nil(t, log.WithFields(map[string]any{"k": "v"}))
	})
}

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	require.Empty(t, CorrelationID(context.Background()))

	id := NewCorrelationID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.NotEqual(t, id, NewCorrelationID())

	ctx := WithCorrelationID(context.Background(), id)
	require.Equal(t, id, CorrelationID(ctx))
}

func TestNoOpSatisfiesAdminLogger(t *testing.T) {
	t.Parallel()

	var log admin.Logger = NoOp{}
	require.NotPanics(t, func() { log.Info(context.Background(), "ignored", "k", "v") })
}
