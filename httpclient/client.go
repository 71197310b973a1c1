package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/callkit/resilience"
)

const defaultTimeout = 15 * time.Second

// Config configures the HTTP client.
type Config struct {
	// BaseURL is prepended to request paths. A request with an absolute
	// URL path bypasses it.
	BaseURL string
	// Timeout is the default per-request timeout. Defaults to 15s.
	Timeout time.Duration
	// Auth is the default authentication applied to all requests.
	Auth *Auth
	// Headers are default headers applied to all requests.
	Headers map[string]string
	// RateLimiter throttles outbound requests from this client.
	// Nil disables it.
	RateLimiter *resilience.RateLimiterConfig
}

// applyDefaults fills zero-value fields.
func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Request describes one outbound HTTP request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is appended to the client's BaseURL.
	Path string
	// Headers are request-specific headers merged over client defaults.
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body is the request body: io.Reader, []byte, string, url.Values
	// (form-encoded), or any JSON-encodable value.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *Auth
	// Timeout overrides the client timeout for this request. Zero keeps
	// the client default.
	Timeout time.Duration
}

// Response is the result of a request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the flattened response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client executes HTTP requests with auth, bounded timeouts, and typed
// error classification.
type Client struct {
	httpClient *http.Client
	config     Config
	rl         *resilience.RateLimiter
}

// New creates a client from the given config.
func New(cfg Config) (*Client, error) {
	cfg.applyDefaults()

	c := &Client{
		// The per-request context deadline bounds each call; no global
		// client timeout so per-request overrides work.
		httpClient: &http.Client{},
		config:     cfg,
	}
	if cfg.RateLimiter != nil {
		c.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}
	return c, nil
}

// Do executes a single request. Non-2xx responses return both the
// Response and a classified *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return nil, &Error{Code: CodeRateLimit, Message: err.Error(), Err: err}
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.config.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &Error{Code: CodeTimeout, Message: err.Error(), Err: err}
		}
		return nil, &Error{Code: CodeConnection, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Code: CodeConnection, Message: fmt.Sprintf("read response body: %v", err), Err: err}
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}
	if classErr := Classify(resp.StatusCode, body); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// buildRequest constructs the *http.Request from client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		target = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, &Error{Code: CodeValidation, Message: fmt.Sprintf("encode body: %v", err), Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &Error{Code: CodeValidation, Message: fmt.Sprintf("create request: %v", err), Err: err}
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
// url.Values are form-encoded (Stripe's API shape); everything else that
// isn't already bytes is JSON-encoded.
func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	case url.Values:
		return strings.NewReader(v.Encode()), "application/x-www-form-urlencoded", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
