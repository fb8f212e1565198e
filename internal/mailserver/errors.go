package mailserver

import "fmt"

// APIError is returned for any non-2xx response from a remote server's
// admin API. Body carries the raw response text for diagnostics.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote admin API: status %d %s: %s", e.StatusCode, e.Status, e.Body)
}
