package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for any 401. Observing it means the
	// session has already been cleared.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is the 404 class, presented distinctly from generic
	// failure.
	ErrNotFound = errors.New("not found")

	ErrNoSession = errors.New("not logged in")

	ErrEmptyContent = errors.New("content must not be empty")
)

// StatusError carries a non-2xx response with the server's message verbatim.
// Business-rule rejections (e.g. the reaction cooldown) come through here
// untouched, the client never re-derives them.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Code)
	}
	return e.Message
}
