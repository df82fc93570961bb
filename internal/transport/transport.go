package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/hexennacht/restbind/internal/constants"
	"github.com/hexennacht/restbind/pkg/restbind"
)

// Client is the default restbind.Transport, backed by retryablehttp.
// Retries are disabled unless WithRetryConfig enables them; the binding core
// never retries on its own.
type Client struct {
	retry     *retryablehttp.Client
	logger    restbind.Logger
	debug     bool
	userAgent string
}

// Option configures the transport.
type Option func(*Client)

// WithLogger sets the logger used for debug request/response logging.
func WithLogger(logger restbind.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithDebug enables request/response logging when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) { c.userAgent = userAgent }
}

// WithRetryConfig enables retries for transient failures (>=500, 429, and
// connection errors).
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retry.RetryMax = retryMax
		c.retry.RetryWaitMin = waitMin
		c.retry.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.retry.HTTPClient.Timeout = timeout }
}

// New creates a transport client.
func New(opts ...Option) *Client {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 0
	retry.Logger = nil
	retry.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	// Hand the final response back after exhausted retries so the
	// classifier sees the status code instead of a giving-up error.
	retry.ErrorHandler = func(resp *http.Response, err error, numTries int) (*http.Response, error) {
		if resp != nil {
			return resp, nil
		}

		return nil, err
	}

	client := &Client{retry: retry, userAgent: constants.DefaultUserAgent}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do implements restbind.Transport: one HTTP round trip, returning the
// status code and the decoded payload for every completed exchange
// regardless of status.
func (c *Client) Do(ctx context.Context, req *restbind.Request) (*restbind.Result, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	}

	resp, err := c.retry.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}

	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         req.URL,
			"status_code": resp.StatusCode,
			"body_bytes":  len(raw),
		})
	}

	return &restbind.Result{
		Status: resp.StatusCode,
		Data:   decodeBody(resp.Header.Get(constants.HeaderContentType), raw),
	}, nil
}

// decodeBody decodes JSON payloads, falling back to the raw text.
func decodeBody(contentType string, raw []byte) any {
	if len(raw) == 0 {
		return nil
	}

	if strings.Contains(contentType, "json") {
		var value any
		if err := json.Unmarshal(raw, &value); err == nil {
			return value
		}
	}

	return string(raw)
}
