package fetcher

import (
	"fmt"

	"github.com/NivBraz/baconipsum/internal/models"
)

// HTTPError is returned when the API answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
	// Message is the start of the response body, if the server sent one.
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error occurred: %s", e.Status)
	}
	return fmt.Sprintf("HTTP error occurred: %s: %s", e.Status, e.Message)
}

// TransportError is returned when no response could be obtained: DNS,
// connection, timeout, cancellation or a broken body read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when the body does not have the shape the
// requested format promises.
type DecodeError struct {
	Format models.Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected %s response body: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
