package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tkleiven/nametag/internal/domain"
	"github.com/tkleiven/nametag/internal/executor"
	"github.com/tkleiven/nametag/internal/reporting"
)

type reserveRequestBody struct {
	Nickname string `json:"nickname"`
}

type reserveResponseBody struct {
	Username         string `json:"username"`
	ReservationToken string `json:"reservationToken"`
}

// AttemptToReserve asks the directory to reserve a username for the desired
// nickname. The attemptID is generated by the caller and echoed back on the
// result and on any *domain.ReservationError, so overlapping attempts can be
// told apart.
func (c *Client) AttemptToReserve(ctx context.Context, desiredNickname string, attemptID domain.AttemptID) (domain.ReservationResult, error) {
	req := executor.Request{
		Method: http.MethodPost,
		Path:   "/v1/usernames/reserve",
		Body:   reserveRequestBody{Nickname: desiredNickname},
	}

	result, err := executor.Execute(ctx, c.transport, req,
		func(resp executor.RawResponse) (domain.ReservationResult, error) {
			return reservationFromResponse(attemptID, resp)
		},
		func(rawErr *executor.RawError) (domain.ReservationResult, error) {
			return reservationFromFailure(attemptID, rawErr)
		},
	)
	if err != nil {
		reporting.Report(ctx, err, map[string]string{
			"nickname":  desiredNickname,
			"attemptId": string(attemptID),
		})
		return domain.ReservationResult{}, err
	}

	return result, nil
}

func reservationFromResponse(attemptID domain.AttemptID, resp executor.RawResponse) (domain.ReservationResult, error) {
	fail := func(err error) (domain.ReservationResult, error) {
		return domain.ReservationResult{}, &domain.ReservationError{AttemptID: attemptID, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("%w: unexpected status %d on reservation", domain.ErrProtocolViolation, resp.StatusCode))
	}

	var body reserveResponseBody
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return fail(fmt.Errorf("%w: failed to parse reservation response: %w", domain.ErrProtocolViolation, err))
	}
	if body.Username == "" {
		return fail(fmt.Errorf("%w: reservation response missing username", domain.ErrProtocolViolation))
	}
	if body.ReservationToken == "" {
		return fail(fmt.Errorf("%w: reservation response missing reservationToken", domain.ErrProtocolViolation))
	}

	parsed, ok := domain.ParseUsername(body.Username)
	if !ok {
		return fail(fmt.Errorf("%w: reserved username %q has no valid discriminator", domain.ErrProtocolViolation, body.Username))
	}

	return domain.ReservationResult{
		AttemptID: attemptID,
		Outcome:   domain.ReservationSuccessful,
		Reservation: &domain.ReservedUsername{
			RawUsername:      body.Username,
			ReservationToken: body.ReservationToken,
			Username:         parsed,
		},
	}, nil
}

func reservationFromFailure(attemptID domain.AttemptID, rawErr *executor.RawError) (domain.ReservationResult, error) {
	if !rawErr.HasStatusCode() {
		return domain.ReservationResult{}, &domain.ReservationError{
			AttemptID: attemptID,
			Err:       fmt.Errorf("%w: %w", domain.ErrTransportFailure, rawErr),
		}
	}

	switch rawErr.StatusCode {
	case http.StatusUnprocessableEntity, http.StatusConflict:
		// 422: the nickname failed server-side validation.
		// 409: no discriminator could be allocated, or the name is forbidden.
		return domain.ReservationResult{
			AttemptID: attemptID,
			Outcome:   domain.ReservationRejected,
		}, nil
	case http.StatusRequestEntityTooLarge:
		return domain.ReservationResult{
			AttemptID: attemptID,
			Outcome:   domain.ReservationRateLimited,
		}, nil
	}

	return domain.ReservationResult{}, &domain.ReservationError{
		AttemptID: attemptID,
		Err:       fmt.Errorf("%w: unexpected status %d on reservation", domain.ErrProtocolViolation, rawErr.StatusCode),
	}
}
