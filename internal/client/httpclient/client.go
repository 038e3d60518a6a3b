package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/openmat/internal/common"
	"github.com/dmitrijs2005/openmat/internal/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Request carries the optional parts of a call. Params with empty values are
// dropped from the query string. A non-nil Body is sent as JSON.
type Request struct {
	Params map[string]string
	Body   any
}

// Response is a successful (2xx) reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	log       logging.Logger
	metrics   *metrics
	requestID func() string

	mu      sync.RWMutex
	headers http.Header
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (tests use the one from
// httptest.Server).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero means no deadline besides ctx.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics registers request counters and latency histograms in reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) { c.metrics = newMetrics(reg) }
}

func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) { c.requestID = fn }
}

// New returns a Client sending every request to baseURL + path.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		log:       logging.Nop(),
		requestID: uuid.NewString,
		headers:   make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// SetDefaultHeader attaches name: value to every subsequent request.
func (c *Client) SetDefaultHeader(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers.Set(name, value)
}

// ClearDefaultHeader removes a default header. Clearing an absent header is a no-op.
func (c *Client) ClearDefaultHeader(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers.Del(name)
}

func (c *Client) DefaultHeader(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Get(name)
}

func (c *Client) Get(ctx context.Context, path string, params map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, Request{Params: params})
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, Request{Body: body})
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, Request{Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, Request{})
}

// Do sends one request. It returns *HTTPError for non-2xx statuses and
// *NetworkError when no response was received.
func (c *Client) Do(ctx context.Context, method, path string, r Request) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.buildURL(path, r.Params)

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	c.mu.RLock()
	for name, values := range c.headers {
		req.Header[name] = append([]string(nil), values...)
	}
	c.mu.RUnlock()

	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := c.requestID()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		c.observe(method, "error", elapsed)
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, "error", elapsed)
		return nil, &NetworkError{Method: method, URL: target, Err: fmt.Errorf("read body: %w", err)}
	}

	c.observe(method, strconv.Itoa(resp.StatusCode), elapsed)
	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"duration", elapsed, "request_id", reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Method: method, Path: path, Status: resp.StatusCode, Body: payload}
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: payload}, nil
}

func (c *Client) buildURL(path string, params map[string]string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path

	q := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	return target
}

func (c *Client) observe(method, status string, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.requestsTotal.WithLabelValues(method, status).Inc()
	c.metrics.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
