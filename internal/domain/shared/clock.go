package shared

import (
	"sync"
	"time"
)

// Clock supplies the ledger timestamp for every mutating operation
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall-clock time truncated to whole seconds
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// MonotonicClock wraps a Clock so that successive readings never go backwards
type MonotonicClock struct {
	mu     sync.Mutex
	source Clock
	last   time.Time
}

// NewMonotonicClock creates a monotonic wrapper around source
func NewMonotonicClock(source Clock) *MonotonicClock {
	return &MonotonicClock{source: source}
}

// Now returns the later of the source reading and the previous reading
func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.source.Now()
	if now.Before(c.last) {
		return c.last
	}
	c.last = now
	return now
}

// FixedClock always returns the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}
