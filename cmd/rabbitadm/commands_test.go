package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
	rerrors "github.com/alexisbeaulieu97/rabbitadm/pkg/errors"
)

func TestQueueDeleteForwardsConditions(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	stdout, _, err := execute(t, broker, "queue", "delete", "orders", "--vhost", "prod", "--if-unused", "--if-empty")
	require.NoError(t, err)
	require.Contains(t, stdout, `[OK] queue "orders" deleted from "prod"`)

	calls := broker.calls()
	require.Len(t, calls, 1)
	require.Equal(t, http.MethodDelete, calls[0].Method)
	require.Equal(t, "/api/queues/prod/orders", calls[0].Path)
	require.Equal(t, "if-unused=true&if-empty=true", calls[0].Query)
}

func TestQueueCreateSendsDefinition(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "queue", "create", "orders",
		"--durable", "--lazy", "--max-length", "1000",
		"--arg", "x-overflow=reject-publish", "--arg", "x-single-active-consumer=true")
	require.NoError(t, err)

	calls := broker.calls()
	require.Len(t, calls, 1)
	require.Equal(t, http.MethodPut, calls[0].Method)
	require.Equal(t, "/api/queues/%2f/orders", calls[0].Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &body))
	require.Equal(t, true, body["durable"])
	require.Equal(t, false, body["auto_delete"])

	args, ok := body["arguments"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(1000), args["x-max-length"])
	require.Equal(t, "lazy", args["x-queue-mode"])
	require.Equal(t, "reject-publish", args["x-overflow"])
	require.Equal(t, true, args["x-single-active-consumer"])
}

func TestQueueCreateRejectsMalformedArgument(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "queue", "create", "orders", "--arg", "no-equals-sign")
	require.Error(t, err)
	require.Contains(t, err.Error(), "key=value")
	require.Empty(t, broker.calls())
}

func TestQueueCreateReportsDuplicateArgument(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "queue", "create", "orders", "--max-length", "10", "--arg", "x-max-length=20")
	require.Error(t, err)
	require.Contains(t, err.Error(), string(admin.ErrCodeDuplicateArgument))
	require.Empty(t, broker.calls())
}

func TestVirtualHostDeleteRefusesDefault(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "vhost", "delete", "/")
	require.Error(t, err)
	require.Contains(t, err.Error(), string(admin.ErrCodeDefaultVHost))
	require.Contains(t, err.Error(), "Suggestion: The default virtual host cannot be deleted")
	require.Empty(t, broker.calls())

	var opErr *rerrors.OperationError
	require.ErrorAs(t, err, &opErr)
	require.Len(t, opErr.Errs, 1)
}

func TestPolicyCreateRejectsFederationConflict(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "policy", "create", "federate", "--pattern", "^amq\\.",
		"--federation-upstream", "east", "--federation-upstream-set", "all")
	require.Error(t, err)
	require.Contains(t, err.Error(), string(admin.ErrCodeConflictArgument))
	require.Empty(t, broker.calls())
}

func TestPolicyCreateSendsRules(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "policy", "create", "mirror", "--vhost", "prod", "--pattern", ".*",
		"--ha-mode", "exactly", "--ha-params", "2", "--apply-to", "queues", "--priority", "5")
	require.NoError(t, err)

	calls := broker.calls()
	require.Len(t, calls, 1)
	require.Equal(t, "/api/policies/prod/mirror", calls[0].Path)
	require.JSONEq(t, `{"pattern":".*","apply-to":"queues","priority":5,"definition":{"ha-mode":"exactly","ha-params":2}}`, calls[0].Body)
}

func TestPolicyCreateRequiresHighAvailabilityParams(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "policy", "create", "mirror", "--pattern", ".*", "--ha-mode", "nodes")
	require.Error(t, err)
	require.Contains(t, err.Error(), string(admin.ErrCodeDependentMissing))
	require.Empty(t, broker.calls())
}

func TestQueueListTableAndJSON(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Get("/api/queues", jsonHandler(http.StatusOK, `[
			{"name":"orders","vhost":"prod","state":"running","messages":12,"consumers":2,"durable":true},
			{"name":"audit","vhost":"/","messages":0,"consumers":0,"durable":false,"policy":"ttl"}
		]`))
	})

	stdout, _, err := execute(t, broker, "queue", "list")
	require.NoError(t, err)
	require.Contains(t, stdout, "VHOST")
	require.Contains(t, stdout, "orders")
	require.Contains(t, stdout, "running")
	require.Contains(t, stdout, "ttl")

	stdout, _, err = execute(t, broker, "queue", "list", "--json")
	require.NoError(t, err)

	var payload struct {
		Count int               `json:"count"`
		Items []admin.QueueInfo `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Equal(t, 2, payload.Count)
	require.Equal(t, "orders", payload.Items[0].Name)
	require.EqualValues(t, 12, payload.Items[0].Messages)
}

func TestEmptyListsPrintPlaceholder(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Get("/api/exchanges", jsonHandler(http.StatusOK, `[]`))
	})

	stdout, _, err := execute(t, broker, "exchange", "list")
	require.NoError(t, err)
	require.Equal(t, "No exchanges found.\n", stdout)

	stdout, _, err = execute(t, broker, "exchange", "list", "--json")
	require.NoError(t, err)
	require.JSONEq(t, `{"count":0,"items":[]}`, stdout)
}

func TestServerErrorBecomesTransportFailure(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Put("/api/vhosts/{name}", jsonHandler(http.StatusInternalServerError, `{"error":"internal_error","reason":"boom"}`))
	})

	_, _, err := execute(t, broker, "vhost", "create", "staging")
	require.Error(t, err)
	require.Contains(t, err.Error(), string(admin.ErrCodeTransport))
	require.Contains(t, err.Error(), "boom")
	require.Contains(t, err.Error(), "management API is reachable")
}

func TestUserCreateRequiresPassword(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "user", "create", "alice", "--tags", "monitoring")
	require.Error(t, err)
	require.Contains(t, err.Error(), string(admin.ErrCodeMissingField))
	require.Empty(t, broker.calls())

	_, _, err = execute(t, broker, "user", "create", "alice", "--password", "pw", "--tags", "administrator, monitoring")
	require.NoError(t, err)

	calls := broker.calls()
	require.Len(t, calls, 1)
	require.Equal(t, "/api/users/alice", calls[0].Path)
	require.JSONEq(t, `{"password":"pw","tags":"administrator,monitoring"}`, calls[0].Body)
}

func TestParameterCreateParsesValue(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "parameter", "create", "max-hops", "3", "--component", "federation", "--vhost", "prod")
	require.NoError(t, err)

	calls := broker.calls()
	require.Len(t, calls, 1)
	require.Equal(t, "/api/parameters/federation/prod/max-hops", calls[0].Path)
	require.JSONEq(t, `{"component":"federation","vhost":"prod","name":"max-hops","value":3}`, calls[0].Body)
}

func TestQueuePeekRendersMessages(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Post("/api/queues/{vhost}/{name}/get", jsonHandler(http.StatusOK, `[
			{"payload_bytes":5,"redelivered":true,"exchange":"","routing_key":"orders","payload":"hello","payload_encoding":"string"}
		]`))
	})

	stdout, _, err := execute(t, broker, "queue", "peek", "orders", "--count", "3")
	require.NoError(t, err)
	require.Contains(t, stdout, "(default)")
	require.Contains(t, stdout, "hello")

	calls := broker.calls()
	require.Len(t, calls, 1)
	require.Equal(t, "/api/queues/%2f/orders/get", calls[0].Path)
	require.JSONEq(t, `{"count":3,"ackmode":"ack_requeue_true","encoding":"auto","truncate":50000}`, calls[0].Body)
}

func TestNodeDefinitionsSummary(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Get("/api/definitions", jsonHandler(http.StatusOK, `{
			"rabbit_version":"3.13.1",
			"vhosts":[{"name":"/"},{"name":"prod"}],
			"queues":[{"name":"orders"}]
		}`))
	})

	stdout, _, err := execute(t, broker, "node", "definitions")
	require.NoError(t, err)
	require.Contains(t, stdout, "RabbitMQ 3.13.1")

	lines := strings.Split(stdout, "\n")
	require.Contains(t, lines, "vhosts             2")
	require.Contains(t, lines, "queues             1")
}

func TestCommandsLogWithCorrelationID(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, stderr, err := execute(t, broker, "exchange", "delete", "events", "--if-unused")
	require.NoError(t, err)

	var entry map[string]any
	firstLine := strings.SplitN(strings.TrimSpace(stderr), "\n", 2)[0]
	require.NoError(t, json.Unmarshal([]byte(firstLine), &entry))
	require.Equal(t, "sent request to delete exchange", entry["message"])
	require.Equal(t, "exchange.delete", entry["command"])
	require.Equal(t, broker.server.URL, entry["broker"])
	require.NotEmpty(t, entry["correlation_id"])

	calls := broker.calls()
	require.Len(t, calls, 1)
	require.Equal(t, "if-unused=true", calls[0].Query)
}

func TestMetricsFileIsWritten(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Get("/api/users", jsonHandler(http.StatusOK, `[{"name":"guest","tags":["administrator"]}]`))
	})
	path := filepath.Join(t.TempDir(), "rabbitadm.prom")

	stdout, _, err := execute(t, broker, "user", "list", "--metrics-file", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "administrator")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `rabbitadm_transport_requests_total{category="success",method="GET"} 1`)
}

func TestMissingSettingsFile(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "vhost", "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "loading settings")
	require.Empty(t, broker.calls())
}

func TestNodeDefinitionsCompare(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Get("/api/definitions", jsonHandler(http.StatusOK, `{
			"rabbit_version":"3.13.1",
			"vhosts":[{"name":"/"},{"name":"prod"}]
		}`))
	})
	dir := t.TempDir()

	same := filepath.Join(dir, "same.json")
	require.NoError(t, os.WriteFile(same, []byte(`{"vhosts":[{"name":"/"},{"name":"prod"}],"rabbit_version":"3.13.1"}`), 0o600))

	stdout, _, err := execute(t, broker, "node", "definitions", "--compare", same)
	require.NoError(t, err)
	require.Contains(t, stdout, "[OK] definitions match")

	drifted := filepath.Join(dir, "drifted.json")
	require.NoError(t, os.WriteFile(drifted, []byte(`{"rabbit_version":"3.13.1","vhosts":[{"name":"/"}]}`), 0o600))

	stdout, _, err = execute(t, broker, "node", "definitions", "--compare", drifted)
	require.Error(t, err)
	require.Contains(t, err.Error(), "drifted")
	require.Contains(t, stdout, "--- "+drifted)
	require.Contains(t, stdout, "+++ broker")
	require.Contains(t, stdout, `+      "name": "prod"`)
}

func TestPolicyCreateSendsHighAvailabilityNodes(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "policy", "create", "mirror", "--pattern", ".*",
		"--ha-mode", "nodes", "--ha-nodes", "rabbit@a,rabbit@b")
	require.NoError(t, err)

	calls := broker.calls()
	require.Len(t, calls, 1)
	require.JSONEq(t, `{"pattern":".*","priority":0,"definition":{"ha-mode":"nodes","ha-params":["rabbit@a","rabbit@b"]}}`, calls[0].Body)
}

func TestNodeHealthReportsAliveVirtualHost(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Get("/api/aliveness-test/{vhost}", jsonHandler(http.StatusOK, `{"status":"ok"}`))
	})

	stdout, _, err := execute(t, broker, "node", "health")
	require.NoError(t, err)
	require.Equal(t, "[OK] virtual host \"/\" is alive\n", stdout)

	calls := broker.calls()
	require.Len(t, calls, 1)
	require.Equal(t, "/api/aliveness-test/%2f", calls[0].Path)
}

func TestNodeHealthFailsWhenBrokerIsUnhealthy(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Get("/api/aliveness-test/{vhost}", jsonHandler(http.StatusOK, `{"status":"failed","reason":"timeout"}`))
	})

	_, _, err := execute(t, broker, "node", "health", "--vhost", "prod")
	require.Error(t, err)
	require.Contains(t, err.Error(), "broker reported failed: timeout")
	require.Equal(t, "/api/aliveness-test/prod", broker.calls()[0].Path)
}

func TestNodeHealthRequiresVirtualHost(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, _, err := execute(t, broker, "node", "health", "--vhost", " ")
	require.Error(t, err)
	require.Contains(t, err.Error(), string(admin.ErrCodeMissingField))
	require.Empty(t, broker.calls())
}

func TestNodeOverviewSummary(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, func(r chi.Router) {
		r.Get("/api/overview", jsonHandler(http.StatusOK, `{
			"cluster_name":"rabbit@east",
			"rabbitmq_version":"3.13.1",
			"erlang_version":"26.2",
			"object_totals":{"queues":3,"exchanges":8,"consumers":1,"connections":2,"channels":4},
			"listeners":[{"node":"rabbit@east","protocol":"amqp","ip_address":"::","port":5672}]
		}`))
	})

	stdout, _, err := execute(t, broker, "node", "overview")
	require.NoError(t, err)
	require.Contains(t, stdout, "Cluster rabbit@east (RabbitMQ 3.13.1, Erlang 26.2)")

	lines := strings.Split(stdout, "\n")
	require.Contains(t, lines, "queues       3")
	require.Contains(t, lines, "channels     4")
	require.Contains(t, stdout, "amqp")

	stdout, _, err = execute(t, broker, "node", "overview", "--json")
	require.NoError(t, err)
	var decoded admin.ClusterInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.EqualValues(t, 8, decoded.ObjectTotals.Exchanges)
}

func TestVerboseLogsTagTransportEntries(t *testing.T) {
	t.Parallel()

	broker := newFakeBroker(t, nil)

	_, stderr, err := execute(t, broker, "vhost", "delete", "staging", "--verbose")
	require.NoError(t, err)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "management API responded" {
			found = true
			require.Equal(t, "transport", entry["component"])
			require.Equal(t, "vhost.delete", entry["command"])
		}
	}
	require.True(t, found, stderr)
}
