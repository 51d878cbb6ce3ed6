package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransportFailure marks failures where no HTTP status code was
	// available (connectivity, timeouts below the HTTP layer).
	ErrTransportFailure = errors.New("transport failure")
	// ErrProtocolViolation marks responses the workflow cannot classify: an
	// unexpected status code, or a success-status body that is missing
	// required fields or unparseable.
	ErrProtocolViolation = errors.New("directory protocol violation")
)

// ReservationError is a failed reservation attempt that could not be
// classified into a ReservationOutcome. It carries the originating AttemptID
// so callers can correlate it with the attempt that produced it.
type ReservationError struct {
	AttemptID AttemptID
	Err       error
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("reservation attempt %s: %s", e.AttemptID, e.Err)
}

func (e *ReservationError) Unwrap() error {
	return e.Err
}
