package cache

import (
	"testing"
	"time"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time          { return f.current }
func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func newTestCache(defaultTTL time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	c := New[string](defaultTTL)
	c.now = clock.now
	return c, clock
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("k", "v", 0)
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("Get = (%q, %v), want (v, true)", got, ok)
	}
}

func TestCache_ExpiryEvictsOnRead(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("k", "v", time.Second)
	if c.Size() != 1 {
		t.Fatalf("size = %d, want 1", c.Size())
	}

	clock.advance(2 * time.Second)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to be absent")
	}
	if c.Size() != 0 {
		t.Errorf("size = %d after expired read, want 0", c.Size())
	}
}

func TestCache_SetResetsClock(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("k", "old", time.Second)
	clock.advance(900 * time.Millisecond)
	c.Set("k", "new", time.Second)
	clock.advance(900 * time.Millisecond)

	got, ok := c.Get("k")
	if !ok || got != "new" {
		t.Fatalf("Get = (%q, %v), want (new, true)", got, ok)
	}
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("k", "v", 0)
	if !c.Delete("k") {
		t.Error("Delete existing = false, want true")
	}
	if c.Delete("k") {
		t.Error("Delete missing = true, want false")
	}
}

func TestCache_Clear(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("a", "1", 0)
	c.Set("b", "2", 0)
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("size = %d after Clear, want 0", c.Size())
	}
}

func TestCache_SizeCountsExpiredUntilTouched(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("a", "1", time.Second)
	c.Set("b", "2", time.Hour)
	clock.advance(2 * time.Second)

	// "a" is logically expired but not yet evicted
	if c.Size() != 2 {
		t.Errorf("size = %d, want 2", c.Size())
	}
}

func TestCache_Clean(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("a", "1", time.Second)
	c.Set("b", "2", time.Second)
	c.Set("c", "3", time.Hour)
	clock.advance(2 * time.Second)

	if evicted := c.Clean(); evicted != 2 {
		t.Errorf("Clean = %d, want 2", evicted)
	}
	if c.Size() != 1 {
		t.Errorf("size = %d after Clean, want 1", c.Size())
	}
}

func TestCache_DefaultTTL(t *testing.T) {
	c, clock := newTestCache(time.Second)

	c.Set("k", "v", 0)
	clock.advance(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("expected default TTL to apply when ttl <= 0")
	}
}

func TestKey_OrderInvariant(t *testing.T) {
	a := Key("search", map[string]string{"track": "Test Song", "artist": "Test Artist", "album": "X"})
	b := Key("search", map[string]string{"album": "X", "artist": "Test Artist", "track": "Test Song"})
	if a != b {
		t.Errorf("keys differ for identical params: %q vs %q", a, b)
	}
}

func TestKey_PrefixesNeverCollide(t *testing.T) {
	params := map[string]string{"track": "Test Song", "artist": "Test Artist"}
	if Key("search", params) == Key("synced", params) {
		t.Error("different prefixes produced the same key")
	}
}
