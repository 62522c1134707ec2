package screen

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"quiz-screen/internal/clock"
)

// EmitFunc receives each countdown repaint: the mm:ss text, whether the
// warning state applies, and whether the element should be visible.
type EmitFunc func(text string, warning, visible bool)

// Countdown re-renders remaining time on a fixed cadence using the
// synchronized server clock. Starting a new countdown implicitly cancels
// the previous one; at most one runs per instance.
type Countdown struct {
	clk  *clock.ServerClock
	wall clockwork.Clock
	tick time.Duration
	emit EmitFunc

	mu   sync.Mutex
	stop chan struct{}
}

func NewCountdown(clk *clock.ServerClock, wall clockwork.Clock, tick time.Duration, emit EmitFunc) *Countdown {
	return &Countdown{clk: clk, wall: wall, tick: tick, emit: emit}
}

// Start runs a countdown from an ISO start timestamp plus a duration in
// seconds. Malformed input degrades to the cleared state.
func (c *Countdown) Start(startISO string, durationSeconds int) {
	start, ok := clock.ParseISO(startISO)
	if !ok || durationSeconds <= 0 {
		c.Clear()
		return
	}
	c.StartUntil(start.Add(time.Duration(durationSeconds) * time.Second))
}

// StartUntil runs a countdown toward an absolute server-relative deadline.
func (c *Countdown) StartUntil(end time.Time) {
	c.mu.Lock()
	c.stopLocked()
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	c.paint(end)
	go c.run(end, stop)
}

// Clear cancels any running countdown and resets to a hidden zero state.
func (c *Countdown) Clear() {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
	c.emit("00:00", false, false)
}

func (c *Countdown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Countdown) run(end time.Time, stop chan struct{}) {
	ticker := c.wall.NewTicker(c.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if done := c.paint(end); done {
				c.mu.Lock()
				if c.stop == stop {
					c.stop = nil
				}
				c.mu.Unlock()
				return
			}
		}
	}
}

// paint emits the current remaining time and reports whether zero was hit.
func (c *Countdown) paint(end time.Time) bool {
	remaining := end.Sub(c.clk.Now())
	if remaining <= 0 {
		c.emit("00:00", true, true)
		return true
	}
	c.emit(formatRemaining(remaining), false, true)
	return false
}

func formatRemaining(remaining time.Duration) string {
	seconds := int(math.Ceil(remaining.Seconds()))
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
