package directory

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tkleiven/nametag/internal/domain"
	"github.com/tkleiven/nametag/internal/executor"
	"github.com/tkleiven/nametag/internal/reporting"
)

// AttemptToDeleteUsername releases the username currently held by the
// authenticated account.
func (c *Client) AttemptToDeleteUsername(ctx context.Context) error {
	req := executor.Request{
		Method: http.MethodDelete,
		Path:   "/v1/usernames",
	}

	_, err := executor.Execute(ctx, c.transport, req,
		deletionFromResponse,
		deletionFromFailure,
	)
	if err != nil {
		reporting.Report(ctx, err)
		return err
	}

	return nil
}

func deletionFromResponse(resp executor.RawResponse) (struct{}, error) {
	if resp.StatusCode != http.StatusNoContent {
		return struct{}{}, fmt.Errorf("%w: unexpected status %d on deletion", domain.ErrProtocolViolation, resp.StatusCode)
	}
	return struct{}{}, nil
}

func deletionFromFailure(rawErr *executor.RawError) (struct{}, error) {
	// No status gets special treatment on deletion.
	return struct{}{}, rawErr
}
