package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/alexisbeaulieu97/rabbitadm/internal/config"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeBroker is a management API stand-in that records every request it
// receives.
type fakeBroker struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeBroker(t *testing.T, register func(r chi.Router)) *fakeBroker {
	t.Helper()

	b := &fakeBroker{}
	r := chi.NewRouter()
	if register != nil {
		register(r)
	}
	// unmatched writes succeed so tests only route what they inspect
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// wrap the router so unmatched requests are recorded too
	b.server = httptest.NewServer(b.record(r))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBroker) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(raw))

		b.mu.Lock()
		b.requests = append(b.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Body:   string(raw),
		})
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (b *fakeBroker) calls() []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recordedRequest(nil), b.requests...)
}

func (b *fakeBroker) env() config.LookupFunc {
	values := map[string]string{
		config.EnvHost:     b.server.URL,
		config.EnvUsername: "guest",
		config.EnvPassword: "guest",
	}
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// execute runs the root command against the broker and returns stdout and
// stderr separately.
func execute(t *testing.T, b *fakeBroker, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmdWithEnv(b.env())
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
