package transport

import "fmt"

// maxSnippet bounds how much of a failure body is echoed into an error.
const maxSnippet = 256

// StatusError reports a response whose status code was outside the 2xx
// range. It carries the raw status and a snippet of the body so callers can
// decide how to react without re-reading the response.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   []byte
}

// NewStatusError builds a StatusError from a failed response.
func NewStatusError(method, url string, resp *Response) *StatusError {
	return &StatusError{
		Method: method,
		URL:    url,
		Status: resp.StatusCode,
		Body:   resp.Body,
	}
}

func (e *StatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.Status, e.snippet())
}

// StatusCode returns the HTTP status code for this error.
func (e *StatusError) StatusCode() int {
	return e.Status
}

func (e *StatusError) snippet() string {
	if len(e.Body) > maxSnippet {
		return string(e.Body[:maxSnippet]) + "..."
	}
	return string(e.Body)
}
