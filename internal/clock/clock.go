package clock

import (
	"sync"
	"time"
)

// Clock is a hybrid logical clock that hands out Unix-millisecond timestamps.
// Tick never returns a value lower than or equal to a previous one, even when
// the wall clock goes backwards, so operations created in one process keep
// their call order.
type Clock struct {
	now  func() time.Time
	last int64
	mu   sync.Mutex
}

// New создает часы на основе системного времени
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource создает часы с заданным источником времени.
// Используется в тестах.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Tick returns the next timestamp: max(wall clock, last+1).
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	wall := c.now().UnixMilli()
	if wall <= c.last {
		wall = c.last + 1
	}
	c.last = wall
	return wall
}

// Observe moves the clock forward past a timestamp seen from elsewhere
// (e.g. a pulled remote change), so later local ticks order after it.
func (c *Clock) Observe(remote int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if remote > c.last {
		c.last = remote
	}
}

// Last returns the most recent timestamp without advancing the clock.
func (c *Clock) Last() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}
