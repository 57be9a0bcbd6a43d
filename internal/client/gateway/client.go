package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/medbook/internal/logging"
	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL = "http://localhost:8000/api"
	DefaultTimeout = 30 * time.Second

	refreshPath = "/accounts/token/refresh/"
	pingPath    = "/doctors/"
)

// TokenStore is the part of the session the gateway reads and maintains.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	SetRefreshToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Client talks JSON to the backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	header  http.Header
	tokens  TokenStore
	log     logging.Logger
	metrics *Metrics
	newID   func() string

	flight singleflight.Group

	mu        sync.RWMutex
	onExpired func()
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every single HTTP exchange. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRegisterer registers the gateway metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) { c.metrics = NewMetrics(reg) }
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.header.Add(key, value) }
}

// WithSessionExpiredHandler sets the function run after a failed refresh
// has cleared the session.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// New returns a Client for baseURL (DefaultBaseURL when empty).
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
		header: http.Header{
			"Content-Type": {"application/json"},
			"Accept":       {"application/json"},
		},
		tokens: tokens,
		log:    logging.Discard(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	return c
}

// SetSessionExpiredHandler replaces the session-expired handler. It may be
// called while requests are in flight.
func (c *Client) SetSessionExpiredHandler(fn func()) {
	c.mu.Lock()
	c.onExpired = fn
	c.mu.Unlock()
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string, params, out any) error {
	return c.Do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do sends one logical request through the pipeline. params is encoded into
// the query string (a url.Values or a struct with `url` tags), body is sent
// as JSON, and a 2xx response body is decoded into out when out is not nil.
func (c *Client) Do(ctx context.Context, method, path string, params, body, out any) error {
	r := &outgoing{method: method, path: path, attempt: firstAttempt}

	if params != nil {
		q, err := encodeQuery(params)
		if err != nil {
			return fmt.Errorf("gateway: encode query: %w", err)
		}
		r.query = q
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode body: %w", err)
		}
		r.body = payload
	}

	for {
		status, data, err := c.send(ctx, r, c.requestStages())
		if err != nil {
			return err
		}
		if status >= 200 && status < 300 {
			return decode(data, out)
		}

		apiErr := newAPIError(method, path, status, data)
		again, err := c.handleResponse(ctx, r, apiErr)
		if !again {
			return err
		}
	}
}

// Ping probes the backend. Any HTTP response, including an error status,
// counts as reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	r := &outgoing{
		method: http.MethodGet,
		path:   pingPath,
		query:  url.Values{"page_size": {"1"}},
	}
	_, _, err := c.send(ctx, r, []stage{{name: "request-id", apply: c.setRequestID}})
	return err
}

// send performs a single HTTP exchange for r after running stages.
func (c *Client) send(ctx context.Context, r *outgoing, stages []stage) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("gateway: build request: %w", err)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	for _, st := range stages {
		if err := st.apply(ctx, req, r); err != nil {
			return 0, nil, fmt.Errorf("gateway: stage %s: %w", st.name, err)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(r.method, 0)
		if errors.Is(err, context.Canceled) {
			return 0, nil, err
		}
		return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(r.method, 0)
		return 0, nil, fmt.Errorf("%w: read %s %s: %v", ErrUnavailable, r.method, r.path, err)
	}
	c.metrics.observe(r.method, resp.StatusCode)

	c.log.Debug(ctx, "request done",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(headerRequestID),
		"attempt", r.attempt.String(),
		"elapsed", time.Since(start),
	)

	return resp.StatusCode, data, nil
}

func encodeQuery(params any) (url.Values, error) {
	if v, ok := params.(url.Values); ok {
		return v, nil
	}
	return query.Values(params)
}

func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
