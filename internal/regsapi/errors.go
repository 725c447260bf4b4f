package regsapi

import "fmt"

// APIError is a terminal upstream failure. When a retried call also fails it
// carries the original failed response, not the retry's.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error renders the failing request and response for operator diagnostics.
func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}
