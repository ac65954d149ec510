package zendesk

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// APIError is a non-2xx answer from the helpdesk API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("zendesk %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, truncate(string(e.Body), 300))
	}
	return fmt.Sprintf("zendesk %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// NetworkError wraps a transport failure (dial, timeout, cancelled context).
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("zendesk %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
