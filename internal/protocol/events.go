// Package protocol defines the wire surface of the screen host: the event
// envelope pushed by the quiz server, the host commands sent back, and the
// message vocabulary pushed to connected display browsers.
package protocol

import "encoding/json"

// Event tags the quiz server pushes over the host websocket.
const (
	EventPlayerJoined       = "player_joined"
	EventShowQuestion       = "show_question"
	EventShowResults        = "show_results"
	EventShowFinal          = "show_final"
	EventAutoStartScheduled = "auto_start_scheduled"
	EventAutoStartCancelled = "auto_start_cancelled"
	EventAutoStartTriggered = "auto_start_triggered"
	EventError              = "error"
)

// Envelope is the outer shape of every inbound server message.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type QuestionOption struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

type Question struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Text        string           `json:"text" validate:"required"`
	Description string           `json:"description"`
	Options     []QuestionOption `json:"options" validate:"dive"`
}

type PlayerJoinedPayload struct {
	Player  string   `json:"player"`
	Players []string `json:"players" validate:"required"`
}

type ShowQuestionPayload struct {
	Question          Question `json:"question"`
	QuestionNumber    int      `json:"question_number" validate:"required,min=1"`
	TotalQuestions    int      `json:"total_questions" validate:"required,min=1"`
	QuestionStartedAt string   `json:"question_started_at"`
	QuestionDuration  int      `json:"question_duration"`
	ServerTime        string   `json:"server_time"`
}

// AnswerResult is one player's outcome for the question that just closed.
// Answer and ResponseTime are nil for players who never answered.
type AnswerResult struct {
	Player       string   `json:"player" validate:"required"`
	Answer       *string  `json:"answer"`
	IsCorrect    bool     `json:"is_correct"`
	Score        float64  `json:"score"`
	Answered     bool     `json:"answered"`
	ResponseTime *float64 `json:"response_time"`
}

type ScoreboardEntry struct {
	Player              string   `json:"player" validate:"required"`
	Score               float64  `json:"score"`
	AnsweredCount       int      `json:"answered_count"`
	TotalResponseTime   float64  `json:"total_response_time"`
	AverageResponseTime *float64 `json:"average_response_time"`
}

type ShowResultsPayload struct {
	QuestionID        int               `json:"question_id"`
	CorrectAnswer     string            `json:"correct_answer"`
	Results           []AnswerResult    `json:"results" validate:"required,dive"`
	Scoreboard        []ScoreboardEntry `json:"scoreboard" validate:"dive"`
	QuestionStartedAt string            `json:"question_started_at"`
	QuestionDuration  int               `json:"question_duration"`
	ServerTime        string            `json:"server_time"`
}

type ShowFinalPayload struct {
	Scoreboard []ScoreboardEntry `json:"scoreboard" validate:"required,dive"`
	ServerTime string            `json:"server_time"`
}

type AutoStartScheduledPayload struct {
	ScheduledAt string  `json:"scheduled_at" validate:"required"`
	Delay       float64 `json:"delay"`
	Origin      string  `json:"origin"`
	ServerTime  string  `json:"server_time"`
}

type AutoStartCancelledPayload struct {
	Reason     string `json:"reason"`
	Origin     string `json:"origin"`
	ServerTime string `json:"server_time"`
}

type AutoStartTriggeredPayload struct {
	Origin     string `json:"origin"`
	ServerTime string `json:"server_time"`
}

type ErrorPayload struct {
	Message string `json:"message" validate:"required"`
}
