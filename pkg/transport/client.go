package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/restmodel/restmodel/pkg/logging"
)

// DefaultTimeout bounds each request issued by Client.
const DefaultTimeout = 30 * time.Second

// Client is the net/http implementation of Transport.
//
// Relative URLs are resolved against the configured base URL, so schemas can
// declare host-independent base paths like "/api/users".
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	log        *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets the URL prefix for relative request paths,
// e.g. "https://api.example.com".
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(name, value string) ClientOption {
	return func(c *Client) {
		c.headers[name] = value
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient constructs a Client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		headers:    make(map[string]string),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send issues one HTTP request. Requests with a body are sent as JSON.
func (c *Client) Send(ctx context.Context, method, url string, body []byte) (*Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(url), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "url", url, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response body: %w", method, url, err)
	}

	c.log.Debug("request complete",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
	}, nil
}

func (c *Client) resolve(url string) string {
	if c.baseURL == "" || strings.Contains(url, "://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return c.baseURL + url
}
