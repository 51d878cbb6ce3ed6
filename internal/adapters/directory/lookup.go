package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tkleiven/nametag/internal/domain"
	"github.com/tkleiven/nametag/internal/executor"
	"github.com/tkleiven/nametag/internal/reporting"
)

type lookupResponseBody struct {
	UUID string `json:"uuid"`
}

type lookupResult struct {
	aci   domain.ACI
	found bool
}

// AttemptACILookup resolves the account identifier owning the given raw
// username. An unowned username is an expected outcome, returned as
// found == false with a nil error.
func (c *Client) AttemptACILookup(ctx context.Context, forUsername string) (domain.ACI, bool, error) {
	req := executor.Request{
		Method: http.MethodGet,
		Path:   "/v1/usernames/" + url.PathEscape(forUsername),
	}

	result, err := executor.Execute(ctx, c.transport, req,
		aciFromResponse,
		aciFromFailure,
	)
	if err != nil {
		reporting.Report(ctx, err, map[string]string{
			"username": forUsername,
		})
		return "", false, err
	}

	return result.aci, result.found, nil
}

func aciFromResponse(resp executor.RawResponse) (lookupResult, error) {
	if resp.StatusCode != http.StatusOK {
		return lookupResult{}, fmt.Errorf("%w: unexpected status %d on lookup", domain.ErrProtocolViolation, resp.StatusCode)
	}

	var body lookupResponseBody
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return lookupResult{}, fmt.Errorf("%w: failed to parse lookup response: %w", domain.ErrProtocolViolation, err)
	}
	if body.UUID == "" {
		return lookupResult{}, fmt.Errorf("%w: lookup response missing uuid", domain.ErrProtocolViolation)
	}

	aci, err := domain.ParseACI(body.UUID)
	if err != nil {
		return lookupResult{}, fmt.Errorf("%w: %w", domain.ErrProtocolViolation, err)
	}

	return lookupResult{aci: aci, found: true}, nil
}

func aciFromFailure(rawErr *executor.RawError) (lookupResult, error) {
	if rawErr.StatusCode == http.StatusNotFound {
		// Nobody owns the username.
		return lookupResult{}, nil
	}

	return lookupResult{}, rawErr
}
