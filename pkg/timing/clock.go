package timing

import (
	"sync"
	"time"
)

// Clock is a source of instants.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock returns a scripted sequence of instants. Once the sequence is
// exhausted it keeps returning the last one.
type FixedClock struct {
	mu    sync.Mutex
	times []time.Time
	next  int
}

// NewFixedClock creates a FixedClock that yields times in order.
func NewFixedClock(times ...time.Time) *FixedClock {
	return &FixedClock{times: times}
}

// SecondsClock creates a FixedClock whose instants are the given offsets, in
// seconds, from the Unix epoch.
func SecondsClock(offsets ...float64) *FixedClock {
	times := make([]time.Time, len(offsets))
	for i, s := range offsets {
		times[i] = time.Unix(0, 0).UTC().Add(time.Duration(s * float64(time.Second)))
	}
	return NewFixedClock(times...)
}

// Now returns the next scripted instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.times) == 0 {
		return time.Time{}
	}
	idx := c.next
	if idx >= len(c.times) {
		idx = len(c.times) - 1
	}
	c.next++
	return c.times[idx]
}
