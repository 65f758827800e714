package httpx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// NetHTTP adapts the standard library client to the Transport interface.
type NetHTTP struct {
	c *http.Client
}

// NewNetHTTP returns a net/http backed transport with the given overall
// request timeout.
func NewNetHTTP(timeout time.Duration) *NetHTTP {
	return &NetHTTP{c: &http.Client{Timeout: timeout}}
}

func (t *NetHTTP) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	resp, err := t.c.Do(hr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: b}, nil
}
