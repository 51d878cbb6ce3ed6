package directory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tkleiven/nametag/internal/adapters/directory"
	"github.com/tkleiven/nametag/internal/domain"
	"github.com/tkleiven/nametag/internal/executor"
)

func TestAttemptToReserve(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	attemptID := domain.AttemptID("A1")

	t.Run("successful reservation", func(t *testing.T) {
		t.Parallel()

		transport := &requestRecordingTransport{
			response: executor.RawResponse{
				StatusCode: 200,
				Body:       []byte(`{"username": "alice.42", "reservationToken": "tok123"}`),
			},
		}
		client := directory.NewClient(transport)

		result, err := client.AttemptToReserve(ctx, "alice", attemptID)
		require.NoError(t, err)
		require.Equal(t, attemptID, result.AttemptID)
		require.Equal(t, domain.ReservationSuccessful, result.Outcome)
		require.Equal(t, &domain.ReservedUsername{
			RawUsername:      "alice.42",
			ReservationToken: "tok123",
			Username:         domain.ParsedUsername{Nickname: "alice", Discriminator: 42},
		}, result.Reservation)

		require.Equal(t, "POST", transport.request.Method)
		require.Equal(t, "/v1/usernames/reserve", transport.request.Path)
	})

	t.Run("attempt id is echoed on errors", func(t *testing.T) {
		t.Parallel()

		transport := &requestRecordingTransport{
			rawErr: &executor.RawError{StatusCode: 500},
		}
		client := directory.NewClient(transport)

		_, err := client.AttemptToReserve(ctx, "alice", attemptID)
		require.Error(t, err)

		var reservationError *domain.ReservationError
		require.ErrorAs(t, err, &reservationError)
		require.Equal(t, attemptID, reservationError.AttemptID)
	})

	t.Run("concurrent attempts keep their own attempt ids", func(t *testing.T) {
		t.Parallel()

		firstAttempt := domain.NewAttemptID()
		secondAttempt := domain.NewAttemptID()

		firstClient := directory.NewClient(&requestRecordingTransport{
			response: executor.RawResponse{
				StatusCode: 200,
				Body:       []byte(`{"username": "alice.42", "reservationToken": "tok1"}`),
			},
		})
		secondClient := directory.NewClient(&requestRecordingTransport{
			rawErr: &executor.RawError{StatusCode: 409},
		})

		firstHandle := executor.Start(ctx, func(ctx context.Context) (domain.ReservationResult, error) {
			return firstClient.AttemptToReserve(ctx, "alice", firstAttempt)
		})
		secondHandle := executor.Start(ctx, func(ctx context.Context) (domain.ReservationResult, error) {
			return secondClient.AttemptToReserve(ctx, "alice", secondAttempt)
		})

		firstResult := <-firstHandle
		require.NoError(t, firstResult.Err)
		require.Equal(t, firstAttempt, firstResult.Value.AttemptID)

		secondResult := <-secondHandle
		require.NoError(t, secondResult.Err)
		require.Equal(t, secondAttempt, secondResult.Value.AttemptID)
		require.Equal(t, domain.ReservationRejected, secondResult.Value.Outcome)
	})
}

func TestAttemptToConfirm(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	reservation := domain.ReservedUsername{
		RawUsername:      "alice.42",
		ReservationToken: "tok123",
		Username:         domain.ParsedUsername{Nickname: "alice", Discriminator: 42},
	}

	t.Run("confirmed username equals the reserved one", func(t *testing.T) {
		t.Parallel()

		transport := &requestRecordingTransport{
			response: executor.RawResponse{StatusCode: 200},
		}
		client := directory.NewClient(transport)

		result, err := client.AttemptToConfirm(ctx, reservation)
		require.NoError(t, err)
		require.Equal(t, domain.ConfirmationConfirmed, result.Outcome)
		require.Equal(t, reservation.RawUsername, result.ConfirmedUsername)

		require.Equal(t, "PUT", transport.request.Method)
		require.Equal(t, "/v1/usernames/confirm", transport.request.Path)
	})

	t.Run("lapsed reservation is rejected", func(t *testing.T) {
		t.Parallel()

		client := directory.NewClient(&requestRecordingTransport{
			rawErr: &executor.RawError{StatusCode: 410},
		})

		result, err := client.AttemptToConfirm(ctx, reservation)
		require.NoError(t, err)
		require.Equal(t, domain.ConfirmationRejected, result.Outcome)
	})
}

func TestAttemptToDeleteUsername(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	t.Run("status 204 succeeds", func(t *testing.T) {
		t.Parallel()

		transport := &requestRecordingTransport{
			response: executor.RawResponse{StatusCode: 204},
		}
		client := directory.NewClient(transport)

		err := client.AttemptToDeleteUsername(ctx)
		require.NoError(t, err)

		require.Equal(t, "DELETE", transport.request.Method)
		require.Equal(t, "/v1/usernames", transport.request.Path)
		require.Nil(t, transport.request.Body)
	})

	t.Run("status 200 is a protocol violation", func(t *testing.T) {
		t.Parallel()

		client := directory.NewClient(&requestRecordingTransport{
			response: executor.RawResponse{StatusCode: 200},
		})

		err := client.AttemptToDeleteUsername(ctx)
		require.ErrorIs(t, err, domain.ErrProtocolViolation)
	})
}

func TestAttemptACILookup(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	t.Run("owned username", func(t *testing.T) {
		t.Parallel()

		transport := &requestRecordingTransport{
			response: executor.RawResponse{
				StatusCode: 200,
				Body:       []byte(`{"uuid": "12345678-1234-1234-1234-123456789012"}`),
			},
		}
		client := directory.NewClient(transport)

		aci, found, err := client.AttemptACILookup(ctx, "bob.7")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, domain.ACI("12345678-1234-1234-1234-123456789012"), aci)

		require.Equal(t, "GET", transport.request.Method)
		require.Equal(t, "/v1/usernames/bob.7", transport.request.Path)
	})

	t.Run("unowned username is not an error", func(t *testing.T) {
		t.Parallel()

		client := directory.NewClient(&requestRecordingTransport{
			rawErr: &executor.RawError{StatusCode: 404},
		})

		aci, found, err := client.AttemptACILookup(ctx, "bob.7")
		require.NoError(t, err)
		require.False(t, found)
		require.Empty(t, aci)
	})
}

// requestRecordingTransport answers every request with a fixed outcome and
// records the last request it saw.
type requestRecordingTransport struct {
	request  executor.Request
	response executor.RawResponse
	rawErr   *executor.RawError
}

func (m *requestRecordingTransport) Do(ctx context.Context, req executor.Request) (executor.RawResponse, *executor.RawError) {
	m.request = req
	return m.response, m.rawErr
}
