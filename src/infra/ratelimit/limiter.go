package ratelimit

import (
	"sync"
	"time"

	"github.com/contre95/lyrico/src/lyrics"
)

// Limiter is a fixed-window request counter. A burst straddling a window
// boundary can admit up to twice the ceiling in a short span; that imprecision
// is accepted because the limiter governs our own outbound rate against a
// generous provider ceiling, not hard admission control.
type Limiter struct {
	mu          sync.Mutex
	max         int
	window      time.Duration
	count       int
	windowStart time.Time
	limited     bool

	now func() time.Time // overridable in tests
}

// Status is a read-only snapshot of the limiter state.
type Status struct {
	Count   int
	Max     int
	ResetAt time.Time
	Limited bool
}

// New constructs a limiter admitting at most max requests per window.
func New(max int, window time.Duration) *Limiter {
	l := &Limiter{max: max, window: window, now: time.Now}
	l.windowStart = l.now()
	return l
}

// Check admits or rejects one request. When the window has elapsed the
// counter resets before checking. A rejection returns a RateLimitedError
// carrying the wait until the window resets, rounded up to whole seconds, and
// does not increment the counter.
func (l *Limiter) Check() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) >= l.window {
		l.count = 0
		l.windowStart = now
		l.limited = false
	}

	if l.count >= l.max {
		l.limited = true
		wait := l.windowStart.Add(l.window).Sub(now)
		return &lyrics.RateLimitedError{RetryAfter: ceilSeconds(wait)}
	}

	l.count++
	return nil
}

// SetLimit updates the admission ceiling without disturbing the current
// window or its counter. Lowering it below the current count makes further
// requests fail until the window resets.
func (l *Limiter) SetLimit(max int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.max = max
}

// Status reports the current window without mutating it; a window reset only
// ever happens inside Check.
func (l *Limiter) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Status{
		Count:   l.count,
		Max:     l.max,
		ResetAt: l.windowStart.Add(l.window),
		Limited: l.limited,
	}
}

// Reset zeroes the window as if the limiter were newly constructed.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count = 0
	l.windowStart = l.now()
	l.limited = false
}

func ceilSeconds(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	rounded := d.Truncate(time.Second)
	if rounded < d {
		rounded += time.Second
	}
	return rounded
}
