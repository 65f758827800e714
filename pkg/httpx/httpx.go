package httpx

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Request is the unified outgoing request representation used by the
// resource client.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response carries the status, headers and fully-read body of a completed
// request. Bodies are small (forum payloads), so buffering is fine.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Transport is the adapter signature the resource client talks to. Adapters
// must honor ctx cancellation and deadlines where the underlying library
// allows it.
type Transport interface {
	RoundTrip(ctx context.Context, req *Request) (*Response, error)
}

// New builds a transport by name. The empty name selects nethttp.
func New(kind string, timeout time.Duration) (Transport, error) {
	switch kind {
	case "", "nethttp":
		return NewNetHTTP(timeout), nil
	case "fasthttp":
		return NewFastHTTP(timeout), nil
	}
	return nil, fmt.Errorf("unknown transport %q (want nethttp or fasthttp)", kind)
}
