package executor

import (
	"context"
	"fmt"
)

// Request is an assembled directory call. The transport is responsible for
// turning it into an actual HTTP request; the Body is JSON-encoded when
// non-nil.
type Request struct {
	Method string
	Path   string
	Body   any
}

// RawResponse is a transport-level success: the exchange completed and the
// service answered with a status the transport considers successful.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// RawError is a transport-level failure. StatusCode is 0 when the failure
// happened below the HTTP layer and no status code is available.
type RawError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *RawError) HasStatusCode() bool {
	return e.StatusCode != 0
}

func (e *RawError) Error() string {
	if e.HasStatusCode() {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed: %s", e.Err)
}

func (e *RawError) Unwrap() error {
	return e.Err
}

type Transport interface {
	Do(ctx context.Context, req Request) (RawResponse, *RawError)
}

// Execute issues a single request on the transport and routes the outcome
// through exactly one of the two mappers, exactly once. It performs no status
// code interpretation of its own and forwards whatever the active mapper
// produces without wrapping.
func Execute[T any](
	ctx context.Context,
	transport Transport,
	req Request,
	onSuccess func(resp RawResponse) (T, error),
	onFailure func(rawErr *RawError) (T, error),
) (T, error) {
	resp, rawErr := transport.Do(ctx, req)
	if rawErr != nil {
		return onFailure(rawErr)
	}
	return onSuccess(resp)
}
