// Package timeout races a pending operation against a deadline. The
// operation is never cancelled; losing the race only changes which outcome
// the caller observes first.
package timeout

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is reported when the deadline elapses before the operation
// settles. Its message is exactly "timeout", the signal the probe error
// classification keys on.
var ErrTimeout = errors.New("timeout")

// OpFunc is a typed pending operation.
type OpFunc[T any] func() (T, error)

// Do runs op in its own goroutine and waits up to d for it to settle. If the
// timer fires first, Do returns ErrTimeout and op's eventual outcome is
// discarded. Cancelling ctx ends the wait early with ctx.Err().
func Do(ctx context.Context, d time.Duration, op func() error) error {
	_, err := DoTyped(ctx, d, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}

// DoTyped is the generic form of Do for operations that produce a value.
func DoTyped[T any](ctx context.Context, d time.Duration, op OpFunc[T]) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	// Buffered so the goroutine can settle after the race is lost.
	done := make(chan outcome, 1)
	go func() {
		value, err := op()
		done <- outcome{value: value, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		return out.value, out.err
	case <-timer.C:
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
