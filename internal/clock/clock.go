// Package clock keeps the display's notion of time aligned with the quiz
// server so countdowns survive local clock skew.
package clock

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ServerClock stores the offset between server time and local time. The
// offset is overwritten on every valid sync; last write wins.
type ServerClock struct {
	mu     sync.Mutex
	wall   clockwork.Clock
	offset time.Duration
	synced bool
}

func New(wall clockwork.Clock) *ServerClock {
	return &ServerClock{wall: wall}
}

// Sync refines the offset from an ISO-8601 server timestamp. Invalid or
// missing input is a no-op and reports false.
func (c *ServerClock) Sync(serverTimeISO string) bool {
	ts, ok := ParseISO(serverTimeISO)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = ts.Sub(c.wall.Now())
	c.synced = true
	return true
}

// Now returns local time adjusted by the last known offset.
func (c *ServerClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wall.Now().Add(c.offset)
}

func (c *ServerClock) Offset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

func (c *ServerClock) Synced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.synced
}

// ParseISO accepts the timestamp shapes the quiz server emits: RFC 3339
// with or without fractional seconds, and the offset spelled as +00:00.
func ParseISO(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
