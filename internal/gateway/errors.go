package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates a missing or rejected bearer credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates the target entity no longer exists.
	ErrNotFound = errors.New("not found")
)

// CallError is a classified non-2xx response. Message is the server-provided
// message when the body carried one, else the HTTP status text.
type CallError struct {
	StatusCode int
	Message    string
}

func (e *CallError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gateway call failed with status %d", e.StatusCode)
}

// Is lets callers match on the sentinel classifications with errors.Is.
func (e *CallError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401 || e.StatusCode == 403
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}
