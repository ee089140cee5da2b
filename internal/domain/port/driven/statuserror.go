package driven

import (
	"fmt"
	"net/http"
)

// StatusError reports that GitHub answered a request with an unexpected HTTP
// status. Err holds the underlying client error when there is one.
type StatusError struct {
	StatusCode int
	Message    string // GitHub's error message, if the response carried one.
	Err        error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("GitHub API responded with %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
