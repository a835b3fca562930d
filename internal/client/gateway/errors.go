package gateway

import (
	"errors"
	"fmt"
)

// ErrGrantCountMismatch marks a protocol violation: the server returned a
// different number of upload grants than requested. Match with errors.Is.
var ErrGrantCountMismatch = errors.New("grant count mismatch")

// ServerError is any 4xx/5xx reply from the backend. Status and Body are
// surfaced to the user verbatim.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Body)
}
