package screen

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"quiz-screen/internal/clock"
)

type paint struct {
	text    string
	warning bool
	visible bool
}

func newTestCountdown(t *testing.T) (*Countdown, *clockwork.FakeClock, chan paint) {
	t.Helper()
	wall := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	clk := clock.New(wall)
	paints := make(chan paint, 32)
	cd := NewCountdown(clk, wall, time.Second, func(text string, warning, visible bool) {
		paints <- paint{text: text, warning: warning, visible: visible}
	})
	return cd, wall, paints
}

func nextPaint(t *testing.T, paints chan paint) paint {
	t.Helper()
	select {
	case p := <-paints:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("no paint emitted")
		return paint{}
	}
}

func TestCountdownRunsToZero(t *testing.T) {
	cd, wall, paints := newTestCountdown(t)
	cd.StartUntil(wall.Now().Add(2 * time.Second))

	if p := nextPaint(t, paints); p.text != "00:02" || p.warning || !p.visible {
		t.Fatalf("initial paint = %+v", p)
	}

	wall.BlockUntil(1)
	wall.Advance(time.Second)
	if p := nextPaint(t, paints); p.text != "00:01" || p.warning {
		t.Fatalf("paint after 1s = %+v", p)
	}

	wall.Advance(time.Second)
	if p := nextPaint(t, paints); p.text != "00:00" || !p.warning || !p.visible {
		t.Fatalf("paint at zero = %+v", p)
	}
}

func TestCountdownFormatsMinutes(t *testing.T) {
	cd, wall, paints := newTestCountdown(t)
	cd.StartUntil(wall.Now().Add(90 * time.Second))
	if p := nextPaint(t, paints); p.text != "01:30" {
		t.Fatalf("paint = %+v", p)
	}
	cd.Clear()
	// Drain until the cleared state arrives; the run goroutine may have
	// painted once more in between.
	for {
		p := nextPaint(t, paints)
		if p.text == "00:00" && !p.warning && !p.visible {
			return
		}
	}
}

func TestCountdownStartRejectsMalformedInput(t *testing.T) {
	cd, _, paints := newTestCountdown(t)

	cd.Start("garbage", 30)
	if p := nextPaint(t, paints); p.text != "00:00" || p.warning || p.visible {
		t.Fatalf("malformed start should clear, got %+v", p)
	}

	cd.Start("2024-06-01T12:00:00Z", 0)
	if p := nextPaint(t, paints); p.text != "00:00" || p.visible {
		t.Fatalf("zero duration should clear, got %+v", p)
	}
}

func TestCountdownStartInThePastPaintsZero(t *testing.T) {
	cd, wall, paints := newTestCountdown(t)
	cd.StartUntil(wall.Now().Add(-time.Second))
	if p := nextPaint(t, paints); p.text != "00:00" || !p.warning || !p.visible {
		t.Fatalf("past deadline paint = %+v", p)
	}
}

func TestCountdownRestartCancelsPrevious(t *testing.T) {
	cd, wall, paints := newTestCountdown(t)
	cd.StartUntil(wall.Now().Add(10 * time.Second))
	if p := nextPaint(t, paints); p.text != "00:10" {
		t.Fatalf("first paint = %+v", p)
	}
	cd.StartUntil(wall.Now().Add(3 * time.Second))
	if p := nextPaint(t, paints); p.text != "00:03" {
		t.Fatalf("restart paint = %+v", p)
	}
}
