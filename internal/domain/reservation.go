package domain

// ReservationOutcome is the exhaustive set of expected reservation results.
// Anything the workflow cannot classify is a *ReservationError instead.
type ReservationOutcome string

const (
	ReservationSuccessful  ReservationOutcome = "successful"
	ReservationRejected    ReservationOutcome = "rejected"
	ReservationRateLimited ReservationOutcome = "rate_limited"
)

type ReservationResult struct {
	// Always equal to the AttemptID supplied to the originating call.
	AttemptID AttemptID
	Outcome   ReservationOutcome
	// Set iff Outcome == ReservationSuccessful.
	Reservation *ReservedUsername
}

type ConfirmationOutcome string

const (
	ConfirmationConfirmed   ConfirmationOutcome = "confirmed"
	ConfirmationRejected    ConfirmationOutcome = "rejected"
	ConfirmationRateLimited ConfirmationOutcome = "rate_limited"
)

// ConfirmationResult carries no AttemptID: confirmation is a single
// synchronous call per reservation and is not subject to attempt overlap.
type ConfirmationResult struct {
	Outcome ConfirmationOutcome
	// Set iff Outcome == ConfirmationConfirmed. Always identical to the raw
	// username of the reservation that was confirmed.
	ConfirmedUsername string
}
