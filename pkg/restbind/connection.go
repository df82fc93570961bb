package restbind

import (
	"context"

	"github.com/hexennacht/restbind/pkg/lifecycle"
)

// Request is the payload handed to a Transport: the sole I/O boundary of the
// core.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Result is the raw transport outcome: status code plus decoded payload.
type Result struct {
	Status int
	Data   any
}

// Transport performs one network call. Implementations are injected through
// ConnectionArgs; there is no process-wide default.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Result, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Result, error)

// Do implements Transport.
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Result, error) {
	return f(ctx, req)
}

// ConnectionArgs are supplied once at bind time and shared, read-only, by
// every operation derived from the tree.
type ConnectionArgs struct {
	BaseURL     string
	BaseHeaders map[string]string
	Transport   Transport
	Engine      lifecycle.Engine
}

// CallArgs carries per-invocation values. Never retained beyond a single
// call.
type CallArgs struct {
	Params map[string]string
	Query  map[string]any
	Body   any
}
