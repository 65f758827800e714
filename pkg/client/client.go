package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"forumcli/pkg/config"
	"forumcli/pkg/httpx"
	"forumcli/pkg/logger"
	"forumcli/pkg/models"
	"forumcli/pkg/telemetry"
)

// SessionSource supplies the session whose bearer token is attached to
// outgoing requests. A nil session means unauthenticated.
type SessionSource interface {
	Get() *models.Session
}

// Client is the resource client for the forum backend: one verb per
// endpoint, JSON bodies, bearer auth injected from the session source. No
// caching, no dedup, no retries.
type Client struct {
	base     string
	tr       httpx.Transport
	sessions SessionSource
	limiter  *rate.Limiter
}

// New builds a client from config. sessions may be nil for anonymous use.
func New(cfg *config.Config, sessions SessionSource) (*Client, error) {
	tr, err := httpx.New(cfg.Backend.Transport, cfg.Backend.Timeout.Duration())
	if err != nil {
		return nil, err
	}
	c := &Client{
		base:     strings.TrimRight(cfg.Backend.BaseURL, "/"),
		tr:       tr,
		sessions: sessions,
	}
	if rl := cfg.Backend.RateLimit; rl.RPS > 0 {
		burst := rl.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rl.RPS), burst)
	}
	return c, nil
}

// NewWithTransport builds a client on an explicit transport; used by tests
// and by the bench command, which brings its own pacing.
func NewWithTransport(baseURL string, tr httpx.Transport, sessions SessionSource) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/"), tr: tr, sessions: sessions}
}

// Token returns the current bearer token, or "" when logged out.
func (c *Client) Token() string {
	if c.sessions == nil {
		return ""
	}
	if s := c.sessions.Get(); s != nil {
		return s.Token
	}
	return ""
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.base }

// do performs one request. in (when non-nil) is marshaled as the JSON body;
// out (when non-nil) receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &RequestError{err: err}
		}
	}

	req := &httpx.Request{
		Method: method,
		URL:    c.base + path,
		Header: make(http.Header),
	}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		req.Body = b
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.tr.RoundTrip(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		telemetry.ObserveRequest(method, 0, elapsed)
		logger.Debug("request_failed", "method", method, "path", path, "headers", logger.SafeHeaders(req.Header), "error", err)
		return &RequestError{err: err}
	}
	telemetry.ObserveRequest(method, resp.Status, elapsed)
	logger.Debug("request_done", "method", method, "path", path, "headers", logger.SafeHeaders(req.Header), "status", resp.Status, "elapsed", elapsed)

	if resp.Status < 200 || resp.Status > 299 {
		return &RequestError{Status: resp.Status, Body: resp.Body}
	}
	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}
