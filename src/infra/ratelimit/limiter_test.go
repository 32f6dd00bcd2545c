package ratelimit

import (
	"errors"
	"testing"
	"time"

	"github.com/contre95/lyrico/src/lyrics"
)

func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	current := time.Unix(1700000000, 0)
	l := New(max, window)
	l.now = func() time.Time { return current }
	l.windowStart = current
	return l, &current
}

func TestLimiter_AllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if err := l.Check(); err != nil {
			t.Fatalf("call %d: expected no error, got %v", i+1, err)
		}
	}
}

func TestLimiter_RejectsOverMaxWithoutIncrement(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)

	l.Check()
	l.Check()

	err := l.Check()
	var limited *lyrics.RateLimitedError
	if !errors.As(err, &limited) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if limited.RetryAfter != time.Minute {
		t.Errorf("RetryAfter = %v, want 1m", limited.RetryAfter)
	}

	// Failing path must not inflate the counter
	if status := l.Status(); status.Count != 2 {
		t.Errorf("count = %d after rejection, want 2", status.Count)
	}
}

func TestLimiter_RetryAfterRoundsUp(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)

	l.Check()
	*now = now.Add(30*time.Second + 500*time.Millisecond)

	err := l.Check()
	var limited *lyrics.RateLimitedError
	if !errors.As(err, &limited) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if limited.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s (29.5s rounded up)", limited.RetryAfter)
	}
}

func TestLimiter_WindowResets(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)

	l.Check()
	if err := l.Check(); err == nil {
		t.Fatal("expected second call to be limited")
	}

	*now = now.Add(time.Minute)

	if err := l.Check(); err != nil {
		t.Fatalf("expected call after window to succeed, got %v", err)
	}
	status := l.Status()
	if status.Count != 1 || status.Limited {
		t.Errorf("status after reset = %+v", status)
	}
}

func TestLimiter_StatusDoesNotMutate(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)

	l.Check()
	*now = now.Add(2 * time.Minute)

	// Status sees the stale window; only Check resets it
	status := l.Status()
	if status.Count != 1 {
		t.Errorf("count = %d, want 1 (Status must not reset the window)", status.Count)
	}
}

func TestLimiter_SetLimitKeepsWindow(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	l.Check()
	if err := l.Check(); err == nil {
		t.Fatal("expected second call to be limited")
	}

	// Raising the ceiling admits again without resetting the counter
	l.SetLimit(3)
	if err := l.Check(); err != nil {
		t.Fatalf("expected call under raised ceiling to succeed, got %v", err)
	}
	status := l.Status()
	if status.Count != 2 || status.Max != 3 {
		t.Errorf("status after raise = %+v, want count 2 max 3", status)
	}

	// Lowering it below the current count rejects immediately
	l.SetLimit(1)
	if err := l.Check(); err == nil {
		t.Error("expected call over lowered ceiling to be limited")
	}
	if status := l.Status(); status.Count != 2 {
		t.Errorf("count = %d after lowered rejection, want 2", status.Count)
	}
}

func TestLimiter_Reset(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	l.Check()
	l.Check()
	l.Reset()

	status := l.Status()
	if status.Count != 0 || status.Limited {
		t.Errorf("status after Reset = %+v", status)
	}
	if err := l.Check(); err != nil {
		t.Errorf("expected call after Reset to succeed, got %v", err)
	}
}
