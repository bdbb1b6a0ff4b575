package session

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuth covers a missing, invalid or expired token and wrong credentials.
	ErrAuth = errors.New("authentication required")
	// ErrUnavailable means the server or its store could not be reached.
	ErrUnavailable = errors.New("service unavailable")
	// ErrBusy is returned when a login is already in flight.
	ErrBusy = errors.New("login already in progress")
)

// APIError is a non 2xx response. Message is the server's {error} text when present.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAuth:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrUnavailable:
		return e.Status == http.StatusServiceUnavailable
	}
	return false
}

func fallbackMessage(status int) string {
	return fmt.Sprintf("Request failed: %d %s", status, http.StatusText(status))
}
