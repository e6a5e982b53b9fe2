package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"estateadmin/internal/domain"
)

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// DecodeError reports a response whose shape does not match the expected
// record.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError wraps failures that never produced an HTTP status.
type TransportError struct {
	Op   string
	Errs []error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, errors.Join(e.Errs...))
}

func (e *TransportError) Unwrap() error { return errors.Join(e.Errs...) }

// UserMessage turns any client error into text that is safe to show in a
// notification. Only 4xx messages from the API are passed through.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status < http.StatusInternalServerError {
		return apiErr.Message
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return "Could not reach the listing service. Please check your connection and retry."
	}
	return fallback
}
