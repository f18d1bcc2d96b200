package mocks

import "sync"

// WallClock is a scriptable wall clock. Tests either pin Millis or queue a
// Sequence of readings consumed one per call; when the sequence runs out the
// last reading repeats.
type WallClock struct {
	mu       sync.Mutex
	Millis   int64
	Sequence []int64
	idx      int
}

// NowMillis implements clock.WallClock.
func (c *WallClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.Sequence) == 0 {
		return c.Millis
	}
	if c.idx >= len(c.Sequence) {
		return c.Sequence[len(c.Sequence)-1]
	}
	v := c.Sequence[c.idx]
	c.idx++
	return v
}

// Advance moves a pinned clock forward by d milliseconds.
func (c *WallClock) Advance(d int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Millis += d
}
