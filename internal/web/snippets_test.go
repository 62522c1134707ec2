package web

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"quiz-screen/internal/leaderboard"
	"quiz-screen/internal/protocol"
	"quiz-screen/internal/stats"
)

func render(t *testing.T, component templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := component.Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func TestPlayerListEscapes(t *testing.T) {
	html := render(t, PlayerList([]string{"Аня", "<script>alert(1)</script>"}))
	if !strings.Contains(html, "Аня") {
		t.Fatalf("missing player: %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("unescaped player name: %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped name: %q", html)
	}
}

func TestOptionList(t *testing.T) {
	html := render(t, OptionList([]protocol.QuestionOption{
		{ID: "a", Text: "Париж"},
		{ID: "b", Text: "Лион"},
	}))
	if !strings.Contains(html, `data-option="a"`) || !strings.Contains(html, "Лион") {
		t.Fatalf("options html = %q", html)
	}
}

func TestResultRows(t *testing.T) {
	html := render(t, ResultRows([]stats.AnswerView{
		{Player: "Аня", Answer: "Париж", Answered: true, IsCorrect: true, Score: 3, TimeLabel: "2.0 с", Fastest: true},
		{Player: "Боря", TimeLabel: stats.Dash},
	}))
	if !strings.Contains(html, "2.0 с ⚡") {
		t.Fatalf("fastest marker missing: %q", html)
	}
	if !strings.Contains(html, "3 очка") {
		t.Fatalf("points missing: %q", html)
	}
	if !strings.Contains(html, stats.Dash) {
		t.Fatalf("dash placeholder missing: %q", html)
	}
}

func TestFinalBoard(t *testing.T) {
	rows := leaderboard.Rank([]stats.BoardEntry{
		{Player: "Аня", Score: 21, HasTotal: true, TotalResponseTime: 10,
			HasAverage: true, Average: 2.5, HasBest: true, Best: 1.5, HasWorst: true, Worst: 4.0,
			HasFastestRecord: true},
		{Player: "Боря", Score: 2},
	})
	html := render(t, FinalBoard(rows))
	if !strings.Contains(html, "🥇") || !strings.Contains(html, "🥈") {
		t.Fatalf("medals missing: %q", html)
	}
	if !strings.Contains(html, "21 очко") || !strings.Contains(html, "2 очка") {
		t.Fatalf("points missing: %q", html)
	}
	if !strings.Contains(html, "1.5 с") || !strings.Contains(html, "4.0 с") {
		t.Fatalf("extremes missing: %q", html)
	}
	if strings.Count(html, stats.Dash) != 3 {
		t.Fatalf("expected dashes for missing aggregates: %q", html)
	}
}
