package web

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"quiz-screen/internal/leaderboard"
	"quiz-screen/internal/protocol"
	"quiz-screen/internal/stats"
)

// PlayerList renders the lobby roster.
func PlayerList(names []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		for _, name := range names {
			b.WriteString(`<li class="player">`)
			b.WriteString(html.EscapeString(name))
			b.WriteString(`</li>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// OptionList renders the answer options for the active question.
func OptionList(options []protocol.QuestionOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		for _, option := range options {
			b.WriteString(`<li class="option" data-option="`)
			b.WriteString(html.EscapeString(option.ID))
			b.WriteString(`"><span class="option-id">`)
			b.WriteString(html.EscapeString(option.ID))
			b.WriteString(`</span><span class="option-text">`)
			b.WriteString(html.EscapeString(option.Text))
			b.WriteString(`</span></li>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ResultRows renders the per-player outcome of the question that just
// closed: answer, verdict, accumulated points and formatted response time.
func ResultRows(views []stats.AnswerView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		for _, view := range views {
			b.WriteString(`<li class="result`)
			if view.IsCorrect {
				b.WriteString(` correct`)
			}
			if view.Fastest {
				b.WriteString(` fastest`)
			}
			b.WriteString(`"><span class="result-player">`)
			b.WriteString(html.EscapeString(view.Player))
			b.WriteString(`</span><span class="result-answer">`)
			if view.Answered && view.Answer != "" {
				b.WriteString(html.EscapeString(view.Answer))
			} else {
				b.WriteString(stats.Dash)
			}
			b.WriteString(`</span><span class="result-time">`)
			b.WriteString(html.EscapeString(view.TimeLabel))
			if view.Fastest {
				b.WriteString(` ⚡`)
			}
			b.WriteString(`</span><span class="result-score">`)
			b.WriteString(html.EscapeString(stats.FormatPoints(view.Score)))
			b.WriteString(`</span></li>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ScoreboardRows renders the intermediate standings shown next to the
// question results.
func ScoreboardRows(rows []leaderboard.Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		for _, row := range rows {
			writeBoardRow(&b, row, false)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// FinalBoard renders the final standings with per-player aggregates.
func FinalBoard(rows []leaderboard.Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		for _, row := range rows {
			writeBoardRow(&b, row, true)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeBoardRow(b *strings.Builder, row leaderboard.Row, detailed bool) {
	entry := row.Entry
	b.WriteString(`<li class="board-row`)
	if entry.HasFastestRecord {
		b.WriteString(` record`)
	}
	b.WriteString(`"><span class="board-rank">`)
	b.WriteString(html.EscapeString(row.Badge))
	b.WriteString(`</span><span class="board-player">`)
	b.WriteString(html.EscapeString(entry.Player))
	if entry.HasFastestRecord {
		b.WriteString(` ⚡`)
	}
	b.WriteString(`</span><span class="board-score">`)
	b.WriteString(html.EscapeString(stats.FormatPoints(entry.Score)))
	b.WriteString(`</span>`)
	if detailed {
		b.WriteString(`<span class="board-average">`)
		b.WriteString(html.EscapeString(stats.FormatOptionalSeconds(entry.Average, entry.HasAverage)))
		b.WriteString(`</span><span class="board-best">`)
		b.WriteString(html.EscapeString(stats.FormatOptionalSeconds(entry.Best, entry.HasBest)))
		b.WriteString(`</span><span class="board-worst">`)
		b.WriteString(html.EscapeString(stats.FormatOptionalSeconds(entry.Worst, entry.HasWorst)))
		b.WriteString(`</span>`)
	} else {
		b.WriteString(`<span class="board-total">`)
		b.WriteString(html.EscapeString(stats.FormatOptionalSeconds(entry.TotalResponseTime, entry.HasTotal)))
		b.WriteString(`</span>`)
	}
	b.WriteString(`</li>`)
}
