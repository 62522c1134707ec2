package stats

import (
	"math"
	"testing"

	"quiz-screen/internal/protocol"
)

func ptr(v float64) *float64 { return &v }

func result(player string, seconds *float64) protocol.AnswerResult {
	return protocol.AnswerResult{Player: player, Answered: seconds != nil, ResponseTime: seconds}
}

func TestObserveFastestTie(t *testing.T) {
	agg := NewAggregator()
	summary := agg.Observe([]protocol.AnswerResult{
		result("alice", ptr(2.0)),
		result("bob", ptr(2.0)),
		result("carol", ptr(3.0)),
	})
	if !summary.HasFastest || summary.Fastest != 2.0 {
		t.Fatalf("fastest = %v (%v), want 2.0", summary.Fastest, summary.HasFastest)
	}
	if !summary.FastestPlayers["alice"] || !summary.FastestPlayers["bob"] {
		t.Fatalf("expected alice and bob in the fastest set, got %v", summary.FastestPlayers)
	}
	if summary.FastestPlayers["carol"] {
		t.Fatalf("carol should not be in the fastest set")
	}

	summary = agg.Observe([]protocol.AnswerResult{result("alice", ptr(1.5))})
	if len(summary.FastestPlayers) != 1 || !summary.FastestPlayers["alice"] {
		t.Fatalf("expected alice alone, got %v", summary.FastestPlayers)
	}
	if fastest, ok := agg.SessionFastest(); !ok || fastest != 1.5 {
		t.Fatalf("session fastest = %v (%v), want 1.5", fastest, ok)
	}
	if !agg.HasFastestRecord("alice") {
		t.Fatalf("alice should hold the session record")
	}
	if agg.HasFastestRecord("bob") {
		t.Fatalf("bob should not hold the session record")
	}
}

func TestObserveTieTolerance(t *testing.T) {
	agg := NewAggregator()
	summary := agg.Observe([]protocol.AnswerResult{
		result("alice", ptr(2.0)),
		result("bob", ptr(2.0+5e-7)),
	})
	if !summary.FastestPlayers["alice"] || !summary.FastestPlayers["bob"] {
		t.Fatalf("times within tolerance should tie, got %v", summary.FastestPlayers)
	}
}

func TestObserveSkipsUnusableTimes(t *testing.T) {
	agg := NewAggregator()
	summary := agg.Observe([]protocol.AnswerResult{
		result("alice", nil),
		result("bob", ptr(math.NaN())),
		result("carol", ptr(math.Inf(1))),
	})
	if summary.HasFastest {
		t.Fatalf("no usable times, but fastest = %v", summary.Fastest)
	}
	if agg.Player("alice") != nil || agg.Player("bob") != nil {
		t.Fatalf("unusable times must not create aggregates")
	}
}

func TestAggregatesAcrossQuestions(t *testing.T) {
	agg := NewAggregator()
	agg.Observe([]protocol.AnswerResult{result("alice", ptr(4.0))})
	agg.Observe([]protocol.AnswerResult{result("alice", ptr(2.0))})

	stats := agg.Player("alice")
	if stats == nil {
		t.Fatal("missing aggregate for alice")
	}
	if stats.Count != 2 || stats.Total != 6.0 || stats.Best != 2.0 || stats.Worst != 4.0 {
		t.Fatalf("unexpected aggregate: %+v", stats)
	}

	agg.Reset()
	if agg.Player("alice") != nil {
		t.Fatal("reset should wipe aggregates")
	}
	if _, ok := agg.SessionFastest(); ok {
		t.Fatal("reset should wipe the session fastest")
	}
}

func TestEnrichResults(t *testing.T) {
	agg := NewAggregator()
	answer := "b"
	results := []protocol.AnswerResult{
		{Player: "alice", Answer: &answer, IsCorrect: true, Score: 3, Answered: true, ResponseTime: ptr(2.0)},
		{Player: "bob", Answered: false},
	}
	summary := agg.Observe(results)
	views := agg.EnrichResults(results, summary)
	if len(views) != 2 {
		t.Fatalf("got %d views", len(views))
	}
	if views[0].TimeLabel != "2.0 с" || !views[0].Fastest {
		t.Fatalf("unexpected alice view: %+v", views[0])
	}
	if views[1].TimeLabel != Dash || views[1].Fastest {
		t.Fatalf("unexpected bob view: %+v", views[1])
	}
}

func TestEnrichScoreboardFallsBackToServerTotals(t *testing.T) {
	agg := NewAggregator()
	agg.Observe([]protocol.AnswerResult{result("alice", ptr(2.0))})

	avg := 5.0
	board := agg.EnrichScoreboard([]protocol.ScoreboardEntry{
		{Player: "alice", Score: 3, AnsweredCount: 9, TotalResponseTime: 99},
		{Player: "ghost", Score: 1, AnsweredCount: 2, TotalResponseTime: 10, AverageResponseTime: &avg},
		{Player: "silent", Score: 0},
	})

	if !board[0].HasBest || board[0].Best != 2.0 || board[0].AnsweredCount != 1 {
		t.Fatalf("alice should use local aggregates: %+v", board[0])
	}
	if !board[1].HasTotal || board[1].TotalResponseTime != 10 || !board[1].HasAverage || board[1].Average != 5.0 {
		t.Fatalf("ghost should keep server totals: %+v", board[1])
	}
	if board[1].HasBest || board[1].HasWorst {
		t.Fatalf("ghost has no local extremes: %+v", board[1])
	}
	if board[2].HasTotal || board[2].HasAverage {
		t.Fatalf("silent has no data at all: %+v", board[2])
	}
}
