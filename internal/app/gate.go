package app

import (
	"context"
	"sync"
	"time"

	"github.com/veloboard/flapship/internal/ports"
)

// MinDispatchInterval is the default minimum spacing between calls to the
// board endpoint: a one-second margin over the endpoint's documented
// fifteen-second minimum.
const MinDispatchInterval = 16 * time.Second

// Gate enforces the minimum interval between outbound calls to the board.
// There is exactly one Gate per process and every dispatch path, including
// the one-shot text fallback, must go through it. The gate holds its lock
// for the whole wait, so overlapping callers serialize first-acquire-wins
// with no fairness guarantee beyond that.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	clock    ports.Clock
	last     time.Time
}

// NewGate creates a gate with the given interval. A non-positive interval
// falls back to MinDispatchInterval. The clock is injected so tests can run
// without real sixteen-second sleeps.
func NewGate(interval time.Duration, clock ports.Clock) *Gate {
	if interval <= 0 {
		interval = MinDispatchInterval
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Gate{interval: interval, clock: clock}
}

// Acquire blocks until at least the configured interval has passed since
// the previous acquisition, then records the new last-call time at the
// moment it unblocks, so the next caller's wait is computed from the actual
// call instant. Context cancellation during the wait aborts without
// recording. The first acquisition never waits.
func (g *Gate) Acquire(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() {
		if wait := g.interval - g.clock.Now().Sub(g.last); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-g.clock.After(wait):
			}
		}
	}

	g.last = g.clock.Now()
	return nil
}
