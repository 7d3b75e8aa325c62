package remote

import (
	"errors"
	"fmt"
)

// Sentinel errors for the HTTP status classes the engine branches on.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// StatusError is a non-2xx response that is not one of the sentinel cases.
type StatusError struct {
	Method string
	Path   string
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s failed: %d %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s failed: %d", e.Method, e.Path, e.Status)
}

// Retryable classifies err for the queue processor: transport failures and
// 5xx responses are retryable, everything the server answered with a 4xx is
// not. Auth errors are neither — the caller handles them before asking.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	// No HTTP status at all: connection refused, DNS, timeout.
	return true
}
