package api

import (
	"errors"
	"fmt"
)

// ErrNoHTTPConfig reports an API operation invoked on an adapter that has no
// endpoint configured for it. It is detectable before any request is made
// and is always propagated, never swallowed.
var ErrNoHTTPConfig = errors.New("no HTTP configuration provided")

// HTTPError carries a non-2xx response back to the caller.
type HTTPError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d %s: %s", e.Status, e.StatusText, e.Body)
	}
	return fmt.Sprintf("HTTP %d %s", e.Status, e.StatusText)
}
