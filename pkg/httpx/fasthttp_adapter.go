package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
)

// FastHTTP adapts fasthttp's client to the Transport interface. fasthttp
// has no native context plumbing, so cancellation is approximated by a
// deadline: the tighter of ctx's deadline and the configured timeout.
type FastHTTP struct {
	c       *fasthttp.Client
	timeout time.Duration
}

// NewFastHTTP returns a fasthttp backed transport with the given default
// request timeout.
func NewFastHTTP(timeout time.Duration) *FastHTTP {
	return &FastHTTP{c: &fasthttp.Client{}, timeout: timeout}
}

func (t *FastHTTP) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(freq)
	defer fasthttp.ReleaseResponse(fresp)

	freq.Header.SetMethod(req.Method)
	freq.SetRequestURI(req.URL)
	for k, vs := range req.Header {
		for _, v := range vs {
			freq.Header.Add(k, v)
		}
	}
	if len(req.Body) > 0 {
		freq.SetBody(req.Body)
	}

	timeout := t.timeout
	if dl, ok := ctx.Deadline(); ok {
		if until := time.Until(dl); timeout <= 0 || until < timeout {
			timeout = until
		}
	}
	var err error
	if timeout > 0 {
		err = t.c.DoTimeout(freq, fresp, timeout)
	} else {
		err = t.c.Do(freq, fresp)
	}
	if err != nil {
		return nil, err
	}

	hdr := make(http.Header)
	fresp.Header.VisitAll(func(k, v []byte) {
		hdr.Add(string(k), string(v))
	})
	return &Response{
		Status: fresp.StatusCode(),
		Header: hdr,
		Body:   append([]byte(nil), fresp.Body()...),
	}, nil
}
