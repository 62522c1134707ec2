// Package stats keeps the session-scoped response-time aggregates the quiz
// server does not send: per-player best/worst/average times and the
// tie-tolerant fastest records used by the results and final screens.
package stats

import (
	"math"

	"quiz-screen/internal/protocol"
)

// Two response times within this many seconds count as a tie.
const TieTolerance = 1e-6

// PlayerStats is the running aggregate for one player. Best and Worst are
// meaningful only while Count > 0.
type PlayerStats struct {
	Count int
	Total float64
	Best  float64
	Worst float64
}

type Aggregator struct {
	players        map[string]*PlayerStats
	sessionFastest float64
	hasSession     bool
}

func NewAggregator() *Aggregator {
	return &Aggregator{players: make(map[string]*PlayerStats)}
}

// Reset wipes all per-player aggregates. Called when a new quiz session
// starts (question number 1 or below).
func (a *Aggregator) Reset() {
	a.players = make(map[string]*PlayerStats)
	a.sessionFastest = 0
	a.hasSession = false
}

// Player returns the aggregate for name, or nil if the player has no
// recorded answers this session.
func (a *Aggregator) Player(name string) *PlayerStats {
	return a.players[name]
}

// QuestionSummary describes the single question just observed.
type QuestionSummary struct {
	Fastest    float64
	HasFastest bool
	// FastestPlayers holds everyone tied for the question's best time.
	FastestPlayers map[string]bool
}

// Observe folds one question's results into the running aggregates and
// reports the question-level fastest set. Non-finite or missing response
// times are excluded from aggregation.
func (a *Aggregator) Observe(results []protocol.AnswerResult) QuestionSummary {
	summary := QuestionSummary{FastestPlayers: make(map[string]bool)}
	for _, result := range results {
		seconds, ok := finiteTime(result.ResponseTime)
		if !ok {
			continue
		}
		stats := a.players[result.Player]
		if stats == nil {
			stats = &PlayerStats{Best: seconds, Worst: seconds}
			a.players[result.Player] = stats
		}
		stats.Count++
		stats.Total += seconds
		if seconds < stats.Best {
			stats.Best = seconds
		}
		if seconds > stats.Worst {
			stats.Worst = seconds
		}
		if !summary.HasFastest || seconds < summary.Fastest-TieTolerance {
			summary.Fastest = seconds
			summary.HasFastest = true
		} else if seconds < summary.Fastest {
			// Faster inside the tolerance window: keep the smaller value so
			// the tie set stays anchored to the true minimum.
			summary.Fastest = seconds
		}
		if !a.hasSession || seconds < a.sessionFastest {
			a.sessionFastest = seconds
			a.hasSession = true
		}
	}
	for _, result := range results {
		seconds, ok := finiteTime(result.ResponseTime)
		if !ok {
			continue
		}
		if summary.HasFastest && seconds <= summary.Fastest+TieTolerance {
			summary.FastestPlayers[result.Player] = true
		}
	}
	return summary
}

// SessionFastest is the best time recorded across the whole session so far.
func (a *Aggregator) SessionFastest() (float64, bool) {
	return a.sessionFastest, a.hasSession
}

// HasFastestRecord reports whether the player's best time ties the
// session-wide fastest.
func (a *Aggregator) HasFastestRecord(name string) bool {
	stats := a.players[name]
	if stats == nil || stats.Count == 0 || !a.hasSession {
		return false
	}
	return stats.Best <= a.sessionFastest+TieTolerance
}

func finiteTime(value *float64) (float64, bool) {
	if value == nil {
		return 0, false
	}
	seconds := *value
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, false
	}
	return seconds, true
}
