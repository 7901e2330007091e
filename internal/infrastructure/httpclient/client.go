// Package httpclient issues JSON requests against the order backend with the
// current bearer token attached. It is deliberately thin: no retries, no
// client-side timeout and no request de-duplication.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/order-portal/internal/core/ports"
	"github.com/99minutos/order-portal/internal/metrics"
)

const mimeJSON = "application/json"

// Request describes one call. It is built per call and never retained.
type Request struct {
	Method  string
	Path    string
	Query   Params
	Body    any
	Headers map[string]string
}

// Client is safe for concurrent use; calls share nothing but the token
// source, which is read once per call.
type Client struct {
	baseURL  string
	tokens   ports.TokenSource
	http     *http.Client
	defaults map[string]string
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client. The default has no timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithDefaultHeader adds a header sent with every request, below the
// Authorization header in precedence.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) { c.defaults[key] = value }
}

// New creates a client for baseURL. tokens may be nil for an anonymous client.
func New(baseURL string, tokens ports.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokens:   tokens,
		http:     &http.Client{},
		defaults: map[string]string{"Content-Type": mimeJSON},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CallOption adjusts a single request.
type CallOption func(*Request)

// WithHeader overrides one header for a single call.
func WithHeader(key, value string) CallOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = map[string]string{}
		}
		r.Headers[key] = value
	}
}

// WithHeaders overrides several headers for a single call.
func WithHeaders(h map[string]string) CallOption {
	return func(r *Request) {
		for k, v := range h {
			WithHeader(k, v)(r)
		}
	}
}

// Get decodes the JSON response of GET path into out.
func (c *Client) Get(ctx context.Context, path string, params Params, out any, opts ...CallOption) error {
	return c.Do(ctx, build(http.MethodGet, path, params, nil, opts), out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body any, params Params, out any, opts ...CallOption) error {
	return c.Do(ctx, build(http.MethodPost, path, params, body, opts), out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body any, params Params, out any, opts ...CallOption) error {
	return c.Do(ctx, build(http.MethodPut, path, params, body, opts), out)
}

// Delete decodes the JSON response of DELETE path into out.
func (c *Client) Delete(ctx context.Context, path string, params Params, out any, opts ...CallOption) error {
	return c.Do(ctx, build(http.MethodDelete, path, params, nil, opts), out)
}

func build(method, path string, params Params, body any, opts []CallOption) Request {
	r := Request{Method: method, Path: path, Query: params, Body: body}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Do executes req. A non-2xx status yields *StatusError, a request that never
// completed yields *TransportError. With out == nil the body is discarded;
// otherwise an empty success body yields ErrEmptyResponse.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	url, err := c.url(req.Path, req.Query)
	if err != nil {
		return err
	}

	var body io.Reader
	if req.Body != nil && (req.Method == http.MethodPost || req.Method == http.MethodPut) {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.applyHeaders(httpReq.Header, req.Headers)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.ClientRequestsTotal.WithLabelValues(req.Method, metrics.StatusLabel(0)).Inc()
		c.log.Error().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("request failed")
		return &TransportError{Method: req.Method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	metrics.ClientRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	metrics.ClientRequestsTotal.WithLabelValues(req.Method, metrics.StatusLabel(resp.StatusCode)).Inc()
	failed := resp.StatusCode < 200 || resp.StatusCode > 299
	if err != nil {
		if failed {
			c.log.Warn().Err(err).Str("method", req.Method).Str("path", req.Path).
				Int("status", resp.StatusCode).Msg("error body unreadable")
			return newStatusError(resp, nil)
		}
		return &TransportError{Method: req.Method, URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request completed")

	if failed {
		return newStatusError(resp, raw)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// applyHeaders layers defaults < Authorization < per-call overrides.
func (c *Client) applyHeaders(h http.Header, overrides map[string]string) {
	for k, v := range c.defaults {
		h.Set(k, v)
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			h.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range overrides {
		h.Set(k, v)
	}
}

func (c *Client) url(path string, params Params) (string, error) {
	qs, err := params.Encode()
	if err != nil {
		return "", err
	}
	u := c.baseURL + path
	if qs != "" {
		u += "?" + qs
	}
	return u, nil
}

func newStatusError(resp *http.Response, raw []byte) *StatusError {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		data = map[string]any{}
	}
	return &StatusError{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Data:       data,
	}
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
