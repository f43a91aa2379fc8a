package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyUsername is returned by Fetch before any request is made.
	ErrEmptyUsername = errors.New("username is required")

	// ErrUnavailable indicates the statistics API could not be reached.
	ErrUnavailable = errors.New("statistics service unavailable")
)

// StatusError reports a failed lookup. Status is the HTTP status for non-2xx
// responses; Message is set when the API answered with status "error".
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("stats api returned status %d: %s", e.Status, e.Message)
	case e.Message != "":
		return "stats api error: " + e.Message
	default:
		return fmt.Sprintf("stats api returned status %d", e.Status)
	}
}
