package app

import (
	"context"
	"fmt"

	"github.com/tkleiven/nametag/internal/domain"
)

type ClaimOutcome string

const (
	ClaimClaimed     ClaimOutcome = "claimed"
	ClaimRejected    ClaimOutcome = "rejected"
	ClaimRateLimited ClaimOutcome = "rate_limited"
)

type ClaimResult struct {
	AttemptID domain.AttemptID
	Outcome   ClaimOutcome
	// Set iff Outcome == ClaimClaimed.
	ClaimedUsername string
}

type ClaimUsername func(ctx context.Context, desiredNickname string, attemptID domain.AttemptID) (ClaimResult, error)

type usernameAllocator interface {
	AttemptToReserve(ctx context.Context, desiredNickname string, attemptID domain.AttemptID) (domain.ReservationResult, error)
	AttemptToConfirm(ctx context.Context, reservation domain.ReservedUsername) (domain.ConfirmationResult, error)
}

// BuildClaimUsername runs a single reserve-then-confirm pass. A rejected
// outcome at either step ends the attempt: the reservation (if any) is spent
// and a retry needs a fresh AttemptID and a fresh reservation.
func BuildClaimUsername(allocator usernameAllocator) ClaimUsername {
	return func(ctx context.Context, desiredNickname string, attemptID domain.AttemptID) (ClaimResult, error) {
		reservation, err := allocator.AttemptToReserve(ctx, desiredNickname, attemptID)
		if err != nil {
			return ClaimResult{}, fmt.Errorf("could not reserve username: %w", err)
		}

		switch reservation.Outcome {
		case domain.ReservationRejected:
			return ClaimResult{AttemptID: attemptID, Outcome: ClaimRejected}, nil
		case domain.ReservationRateLimited:
			return ClaimResult{AttemptID: attemptID, Outcome: ClaimRateLimited}, nil
		case domain.ReservationSuccessful:
		default:
			return ClaimResult{}, fmt.Errorf("unknown reservation outcome: %s", reservation.Outcome)
		}

		confirmation, err := allocator.AttemptToConfirm(ctx, *reservation.Reservation)
		if err != nil {
			return ClaimResult{}, fmt.Errorf("could not confirm reservation: %w", err)
		}

		switch confirmation.Outcome {
		case domain.ConfirmationRejected:
			return ClaimResult{AttemptID: attemptID, Outcome: ClaimRejected}, nil
		case domain.ConfirmationRateLimited:
			return ClaimResult{AttemptID: attemptID, Outcome: ClaimRateLimited}, nil
		case domain.ConfirmationConfirmed:
		default:
			return ClaimResult{}, fmt.Errorf("unknown confirmation outcome: %s", confirmation.Outcome)
		}

		return ClaimResult{
			AttemptID:       attemptID,
			Outcome:         ClaimClaimed,
			ClaimedUsername: confirmation.ConfirmedUsername,
		}, nil
	}
}
