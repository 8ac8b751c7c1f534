package admin

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
)

// recordingTransport answers every request with respond and remembers what
// it was asked.
type recordingTransport struct {
	mu       sync.Mutex
	requests []Request
	contexts []context.Context
	respond  func(Request) (Response, error)
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{
		respond: func(Request) (Response, error) {
			return Response{Status: StatusSuccess, StatusCode: 204}, nil
		},
	}
}

func (r *recordingTransport) Invoke(ctx context.Context, req Request) (Response, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.contexts = append(r.contexts, ctx)
	r.mu.Unlock()
	return r.respond(req)
}

func (r *recordingTransport) calls() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.requests...)
}

// refusingTransport fails the test on any call.
func refusingTransport(t *testing.T) Transport {
	t.Helper()
	return TransportFunc(func(_ context.Context, req Request) (Response, error) {
		t.Errorf("transport must not be invoked, got %s %s", req.Method, req.URL())
		return Response{}, nil
	})
}

func jsonResponse(t *testing.T, v interface{}) Response {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return Response{Status: StatusSuccess, StatusCode: 200, Body: body}
}

func codes(errs []*Error) []ErrorCode {
	out := make([]ErrorCode, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Code)
	}
	return out
}
