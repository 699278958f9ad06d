// Package transport performs the HTTP requests that persist records.
//
// The record lifecycle only needs the narrow Transport interface; Client is
// the standard implementation backed by net/http. Tests and callers with
// unusual wire requirements can substitute their own Transport.
package transport

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"strings"
)

// Transport sends a single HTTP request and reports the outcome.
//
// The returned error covers transport-level failures only (connection
// refused, timeout, malformed URL). Non-2xx responses are returned as a
// *Response with the raw status; interpreting them is the caller's job.
type Transport interface {
	Send(ctx context.Context, method, url string, body []byte) (*Response, error)
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, method, url string, body []byte) (*Response, error)

// Send calls f.
func (f Func) Send(ctx context.Context, method, url string, body []byte) (*Response, error) {
	return f(ctx, method, url, body)
}

// Response is the outcome of one request.
type Response struct {
	// StatusCode is the raw HTTP status code.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Body is the raw response body. Empty for bodyless responses.
	Body []byte
}

// Success reports whether the status code is in the 2xx range.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// JSON decodes the body when the response declared a JSON content type.
// The second return is false when there is no JSON body to decode or the
// body does not parse.
func (r *Response) JSON() (any, bool) {
	if !r.IsJSON() || len(r.Body) == 0 {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, false
	}
	return v, true
}
