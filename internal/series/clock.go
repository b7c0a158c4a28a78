package series

import (
	"sync"
	"time"
)

// Clock supplies the current simulated date for sequential access. The
// orchestrator that owns the simulation loop advances it monotonically over
// a run.
type Clock interface {
	Now() time.Time
}

// SimClock is a mutable simulation clock. It is safe to read from any
// goroutine; only the orchestrator should advance it.
type SimClock struct {
	current time.Time
	mu      sync.RWMutex
}

// NewSimClock creates a clock starting at the given simulated date.
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{current: start}
}

// Now implements Clock.
func (c *SimClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

// Set moves the clock to the given simulated date.
func (c *SimClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = t
}

// Advance moves the clock forward by d and returns the new simulated date.
func (c *SimClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.current.Add(d)

	return c.current
}
