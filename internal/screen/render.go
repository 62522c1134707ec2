package screen

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strconv"

	"github.com/a-h/templ"

	"quiz-screen/internal/leaderboard"
	"quiz-screen/internal/protocol"
	"quiz-screen/internal/stats"
	"quiz-screen/internal/web"
)

// Element IDs below are part of the fragment contract: the quiz server's
// lobby/question/final fragments carry these containers and the controller
// fills them.

func (c *Controller) renderLobby() {
	c.sink.Push(protocol.HTMLUpdate("#playerList", renderComponent(web.PlayerList(c.players))))
	c.sink.Push(protocol.HTMLUpdate("#playerCount", strconv.Itoa(len(c.players))))
}

func (c *Controller) renderQuestion(payload protocol.ShowQuestionPayload) {
	counter := fmt.Sprintf("Вопрос %d из %d", payload.QuestionNumber, payload.TotalQuestions)
	c.sink.Push(protocol.HTMLUpdate("#questionCounter", escapeHTML(counter)))
	c.sink.Push(protocol.HTMLUpdate("#questionTitle", escapeHTML(payload.Question.Title)))
	c.sink.Push(protocol.HTMLUpdate("#questionText", escapeHTML(payload.Question.Text)))
	c.sink.Push(protocol.HTMLUpdate("#questionDescription", escapeHTML(payload.Question.Description)))
	c.sink.Push(protocol.HTMLUpdate("#optionsList", renderComponent(web.OptionList(payload.Question.Options))))
	c.sink.Push(protocol.HTMLUpdate("#correctAnswer", ""))
	c.sink.Push(protocol.HTMLUpdate("#resultsList", ""))
	c.sink.Push(protocol.HTMLUpdate("#scoreboardList", ""))
}

func (c *Controller) renderResults(payload protocol.ShowResultsPayload, views []stats.AnswerView, rows []leaderboard.Row) {
	c.sink.Push(protocol.HTMLUpdate("#correctAnswer", escapeHTML(c.correctAnswerLabel(payload.CorrectAnswer))))
	c.sink.Push(protocol.HTMLUpdate("#resultsList", renderComponent(web.ResultRows(views))))
	c.sink.Push(protocol.HTMLUpdate("#scoreboardList", renderComponent(web.ScoreboardRows(rows))))
}

func (c *Controller) renderFinal(rows []leaderboard.Row) {
	c.sink.Push(protocol.HTMLUpdate("#finalBoard", renderComponent(web.FinalBoard(rows))))
}

// correctAnswerLabel resolves an option id against the question currently
// on screen; unknown ids fall back to the raw id.
func (c *Controller) correctAnswerLabel(id string) string {
	if id == "" {
		return ""
	}
	for _, option := range c.lastQuestion.Options {
		if option.ID == id {
			return option.Text
		}
	}
	return id
}

func renderComponent(component templ.Component) string {
	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		return ""
	}
	return buf.String()
}

func escapeHTML(value string) string {
	if value == "" {
		return ""
	}
	return html.EscapeString(value)
}
