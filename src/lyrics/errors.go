package lyrics

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound means the provider confirmed absence. It is not retryable.
var ErrNotFound = errors.New("lyrics not found")

// ValidationError means the input was malformed. Never retryable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RateLimitedError means the request governor tripped. RetryAfter is the wait
// until the current window resets, rounded up to whole seconds.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.RetryAfter)
}

// TimeoutError means the provider call did not settle before the deadline.
// The outcome is unknown, not a confirmed failure.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Op, e.Timeout)
}

// ProviderError wraps an unexpected failure surfaced by the external provider,
// preserving the original cause.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error during %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsRetryable reports whether a caller-level retry makes sense for err.
// Rate-limit and timeout failures are retryable (with backoff); validation
// failures and confirmed absence are not.
func IsRetryable(err error) bool {
	var rl *RateLimitedError
	var to *TimeoutError
	return errors.As(err, &rl) || errors.As(err, &to)
}
