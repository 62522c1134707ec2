package stats

import "quiz-screen/internal/protocol"

// AnswerView is one row of the per-question results list, ready for
// rendering. TimeLabel already carries the formatted value or the dash
// placeholder for players with no usable time.
type AnswerView struct {
	Player    string
	Answer    string
	Answered  bool
	IsCorrect bool
	Score     float64
	TimeLabel string
	Fastest   bool
}

// BoardEntry is one enriched scoreboard row. Derived fields come from the
// local running aggregate, not from the server payload.
type BoardEntry struct {
	Player            string
	Score             float64
	AnsweredCount     int
	TotalResponseTime float64
	HasTotal          bool
	Average           float64
	HasAverage        bool
	Best              float64
	HasBest           bool
	Worst             float64
	HasWorst          bool
	HasFastestRecord  bool
}

// EnrichResults pairs each answer with its formatted time and marks the
// players tied for the question's fastest time.
func (a *Aggregator) EnrichResults(results []protocol.AnswerResult, summary QuestionSummary) []AnswerView {
	views := make([]AnswerView, 0, len(results))
	for _, result := range results {
		answer := ""
		if result.Answer != nil {
			answer = *result.Answer
		}
		view := AnswerView{
			Player:    result.Player,
			Answer:    answer,
			Answered:  result.Answered,
			IsCorrect: result.IsCorrect,
			Score:     result.Score,
			TimeLabel: Dash,
		}
		if seconds, ok := finiteTime(result.ResponseTime); ok {
			view.TimeLabel = FormatSeconds(seconds)
			view.Fastest = summary.FastestPlayers[result.Player]
		}
		views = append(views, view)
	}
	return views
}

// EnrichScoreboard derives average/best/worst and the fastest-record flag
// for every entry from the running aggregates. Players the aggregator has
// never seen keep the server-sent totals and no derived extremes.
func (a *Aggregator) EnrichScoreboard(entries []protocol.ScoreboardEntry) []BoardEntry {
	board := make([]BoardEntry, 0, len(entries))
	for _, entry := range entries {
		row := BoardEntry{
			Player:        entry.Player,
			Score:         entry.Score,
			AnsweredCount: entry.AnsweredCount,
		}
		if stats := a.players[entry.Player]; stats != nil && stats.Count > 0 {
			row.AnsweredCount = stats.Count
			row.TotalResponseTime = stats.Total
			row.HasTotal = true
			row.Average = stats.Total / float64(stats.Count)
			row.HasAverage = true
			row.Best = stats.Best
			row.HasBest = true
			row.Worst = stats.Worst
			row.HasWorst = true
			row.HasFastestRecord = a.HasFastestRecord(entry.Player)
		} else if entry.AnsweredCount > 0 {
			row.TotalResponseTime = entry.TotalResponseTime
			row.HasTotal = true
			if entry.AverageResponseTime != nil {
				row.Average = *entry.AverageResponseTime
				row.HasAverage = true
			}
		}
		board = append(board, row)
	}
	return board
}
