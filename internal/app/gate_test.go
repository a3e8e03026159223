package app

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeClock advances instantly through waits so gate tests never sleep.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 7, 4, 15, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// Advance moves the clock without anyone waiting.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestGateFirstAcquireDoesNotWait(t *testing.T) {
	clock := newFakeClock()
	start := clock.Now()

	g := NewGate(16*time.Second, clock)
	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if !clock.Now().Equal(start) {
		t.Fatalf("first acquire waited: clock moved by %v", clock.Now().Sub(start))
	}
}

func TestGateEnforcesInterval(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(16*time.Second, clock)

	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire 1: %v", err)
	}
	first := clock.Now()

	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire 2: %v", err)
	}
	if got := clock.Now().Sub(first); got < 16*time.Second {
		t.Fatalf("back-to-back acquires separated by %v, want >= 16s", got)
	}
}

func TestGateRecordsTimeAtUnblock(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(16*time.Second, clock)

	for i := 0; i < 2; i++ {
		if err := g.Acquire(context.Background()); err != nil {
			t.Fatalf("acquire: %v", err)
		}
	}
	second := clock.Now()

	// The third wait must be computed from when the second unblocked,
	// not from when it was invoked.
	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire 3: %v", err)
	}
	if got := clock.Now().Sub(second); got < 16*time.Second {
		t.Fatalf("third acquire separated by %v from second unblock, want >= 16s", got)
	}
}

func TestGateSkipsWaitAfterQuietPeriod(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(16*time.Second, clock)

	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire 1: %v", err)
	}

	clock.Advance(20 * time.Second)
	before := clock.Now()

	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire 2: %v", err)
	}
	if !clock.Now().Equal(before) {
		t.Fatalf("acquire after quiet period waited %v", clock.Now().Sub(before))
	}
}

// stuckClock never fires its timers, for cancellation tests.
type stuckClock struct {
	now time.Time
}

func (c stuckClock) Now() time.Time                       { return c.now }
func (c stuckClock) After(time.Duration) <-chan time.Time { return make(chan time.Time) }

func TestGateHonorsCancellation(t *testing.T) {
	g := NewGate(16*time.Second, stuckClock{now: time.Unix(1000, 0)})

	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire 1: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Acquire(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
