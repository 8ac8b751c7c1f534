package admin

import "context"

// StatusCategory classifies a management API response.
type StatusCategory int

const (
	StatusUnknown StatusCategory = iota
	StatusSuccess
	StatusNotFound
	StatusConflict
	StatusClientError
	StatusServerError
)

func (c StatusCategory) String() string {
	switch c {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not_found"
	case StatusConflict:
		return "conflict"
	case StatusClientError:
		return "client_error"
	case StatusServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Request describes one call to the management API. Path never carries a
// leading slash; Query is the raw query string without "?".
type Request struct {
	Method string
	Path   string
	Query  string
	Body   interface{}
}

// URL joins Path and Query the way they go on the wire.
func (r Request) URL() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// Response is what a Transport reports back for a completed round trip.
type Response struct {
	Status     StatusCategory
	StatusCode int
	Body       []byte
	// Request holds the encoded request body, when the transport has one.
	Request []byte
}

// Transport executes requests against the management API. Implementations
// return an error only when no response was obtained at all.
type Transport interface {
	Invoke(ctx context.Context, req Request) (Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req Request) (Response, error)

// Invoke implements Transport.
func (f TransportFunc) Invoke(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
