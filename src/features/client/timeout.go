package client

import (
	"context"
	"time"

	"github.com/contre95/lyrico/src/lyrics"
)

// withTimeout races fn against a deadline and returns whichever settles
// first. On expiry the losing call is not cancelled, only discarded; the
// buffered channel lets its goroutine finish without leaking. A timeout means
// "outcome unknown", not a confirmed failure.
func withTimeout[T any](ctx context.Context, op string, limit time.Duration, fn func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		value, err := fn(ctx)
		done <- outcome{value: value, err: err}
	}()

	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case o := <-done:
		return o.value, o.err
	case <-timer.C:
		var zero T
		return zero, &lyrics.TimeoutError{Op: op, Timeout: limit}
	}
}
