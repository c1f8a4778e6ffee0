package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized reports a 401/403 answer. The bound session has
	// already been invalidated by the time a caller sees this.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCancelled reports caller-initiated cancellation. No session
	// state was mutated.
	ErrCancelled = errors.New("request cancelled")
)

// RejectedError is a well-formed request refused by business logic
// (validation failure, duplicate join, and so on). Message carries the
// server-provided detail when one was present and is suitable for
// showing to the user verbatim.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected (status %d)", e.Status)
	}
	return fmt.Sprintf("request rejected (status %d): %s", e.Status, e.Message)
}

// TransientError is network or server unavailability: timeouts, DNS
// failures, connection resets, 5xx answers. Safe to retry at the
// caller's discretion; the dispatcher never retries on its own because
// several endpoints are non-idempotent.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsRejected reports whether err is a business-logic rejection, and
// returns it when so.
func IsRejected(err error) (*RejectedError, bool) {
	var re *RejectedError
	ok := errors.As(err, &re)
	return re, ok
}
