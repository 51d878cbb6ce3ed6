package executor

import "context"

type Result[T any] struct {
	Value T
	Err   error
}

// Start runs fn in its own goroutine and returns a handle that receives the
// single result. The channel is buffered, so abandoning the handle (e.g. when
// a newer attempt has superseded it) does not leak the goroutine.
//
// There is no cancellation primitive beyond the context: callers that no
// longer care about a result cancel the context or stop listening.
func Start[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) <-chan Result[T] {
	results := make(chan Result[T], 1)
	go func() {
		value, err := fn(ctx)
		results <- Result[T]{Value: value, Err: err}
	}()
	return results
}
