package directory

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tkleiven/nametag/internal/domain"
	"github.com/tkleiven/nametag/internal/executor"
	"github.com/tkleiven/nametag/internal/reporting"
)

type confirmRequestBody struct {
	Username         string `json:"username"`
	ReservationToken string `json:"reservationToken"`
}

// AttemptToConfirm commits a prior reservation. The reservation is spent
// either way: a rejected confirmation means the reservation is already gone
// server-side, and a new attempt must start from a fresh reservation.
func (c *Client) AttemptToConfirm(ctx context.Context, reservation domain.ReservedUsername) (domain.ConfirmationResult, error) {
	req := executor.Request{
		Method: http.MethodPut,
		Path:   "/v1/usernames/confirm",
		Body: confirmRequestBody{
			Username:         reservation.RawUsername,
			ReservationToken: reservation.ReservationToken,
		},
	}

	result, err := executor.Execute(ctx, c.transport, req,
		func(resp executor.RawResponse) (domain.ConfirmationResult, error) {
			return confirmationFromResponse(reservation, resp)
		},
		confirmationFromFailure,
	)
	if err != nil {
		reporting.Report(ctx, err, map[string]string{
			"username": reservation.RawUsername,
		})
		return domain.ConfirmationResult{}, err
	}

	return result, nil
}

func confirmationFromResponse(reservation domain.ReservedUsername, resp executor.RawResponse) (domain.ConfirmationResult, error) {
	if resp.StatusCode != http.StatusOK {
		return domain.ConfirmationResult{}, fmt.Errorf("%w: unexpected status %d on confirmation", domain.ErrProtocolViolation, resp.StatusCode)
	}

	return domain.ConfirmationResult{
		Outcome:           domain.ConfirmationConfirmed,
		ConfirmedUsername: reservation.RawUsername,
	}, nil
}

func confirmationFromFailure(rawErr *executor.RawError) (domain.ConfirmationResult, error) {
	switch rawErr.StatusCode {
	case http.StatusConflict:
		// We no longer hold this reservation: we never held it, or a newer
		// reservation of ours superseded it.
		return domain.ConfirmationResult{Outcome: domain.ConfirmationRejected}, nil
	case http.StatusGone:
		// The reservation lapsed: expired, taken by another account, or the
		// token is invalid.
		return domain.ConfirmationResult{Outcome: domain.ConfirmationRejected}, nil
	case http.StatusRequestEntityTooLarge:
		return domain.ConfirmationResult{Outcome: domain.ConfirmationRateLimited}, nil
	}

	// Missing or unlisted status: propagate the failure unchanged.
	return domain.ConfirmationResult{}, rawErr
}
