// Package screen owns the big-screen state: which view is mounted, the
// synchronized countdowns, the auto-start panel, and the enrichment of
// server events into display updates. Inbound events are processed strictly
// sequentially by a single consumer; the package has no locking around
// controller state and relies on that ordering.
package screen

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"quiz-screen/internal/clock"
	"quiz-screen/internal/leaderboard"
	"quiz-screen/internal/protocol"
	"quiz-screen/internal/stats"
)

// Screen names. Results reuse the question screen in results mode.
const (
	ScreenLobby    = "lobby"
	ScreenQuestion = "question"
	ScreenFinal    = "final"
)

const (
	transportLostMessage = "Соединение с сервером потеряно. Обновите страницу, чтобы продолжить."
	fragmentErrorMessage = "Не удалось загрузить экран. Обновите страницу."
)

// Sink delivers display messages to connected browsers. Swap blocks until
// the display acknowledges the mount or a fallback timeout elapses, so the
// previous screen's exit animation can finish.
type Sink interface {
	Push(protocol.DisplayMessage)
	Swap(protocol.DisplayMessage)
}

// Commander is the upstream host socket.
type Commander interface {
	Send(protocol.Command) error
	Open() bool
}

type inbound struct {
	frame  []byte
	closed bool
	err    error
}

// Controller is the screen state machine. All fields below mailbox are
// owned by the Run goroutine.
type Controller struct {
	log       *zap.Logger
	sink      Sink
	fragments *FragmentSource
	clk       *clock.ServerClock
	agg       *stats.Aggregator
	upstream  Commander

	mailbox chan inbound

	current      string
	players      []string
	lastQuestion protocol.Question
	auto         autoStart
	question     *Countdown
	autoTimer    *Countdown
}

func NewController(
	log *zap.Logger,
	sink Sink,
	fragments *FragmentSource,
	clk *clock.ServerClock,
	wall clockwork.Clock,
	agg *stats.Aggregator,
	tick time.Duration,
) *Controller {
	c := &Controller{
		log:       log,
		sink:      sink,
		fragments: fragments,
		clk:       clk,
		agg:       agg,
		mailbox:   make(chan inbound, 64),
		auto:      autoStart{phase: AutoIdle},
	}
	c.question = NewCountdown(clk, wall, tick, func(text string, warning, visible bool) {
		sink.Push(protocol.CountdownTick(text, warning, visible))
	})
	c.autoTimer = NewCountdown(clk, wall, tick, func(text string, warning, visible bool) {
		sink.Push(protocol.DisplayMessage{
			Type:      protocol.DisplayAutoStart,
			State:     autoTick,
			Countdown: text,
			Warning:   warning,
			Visible:   visible,
		})
	})
	return c
}

// AttachUpstream wires the host socket. Must be called before Run.
func (c *Controller) AttachUpstream(upstream Commander) {
	c.upstream = upstream
}

// Enqueue hands a raw inbound frame to the controller's mailbox.
func (c *Controller) Enqueue(frame []byte) {
	buf := make([]byte, len(frame))
	copy(buf, frame)
	c.mailbox <- inbound{frame: buf}
}

// TransportClosed reports that the host socket died. There is no
// reconnect; recovery is a manual refresh.
func (c *Controller) TransportClosed(err error) {
	c.mailbox <- inbound{closed: true, err: err}
}

// Run consumes the mailbox until ctx is cancelled. It is the only
// goroutine that touches controller state.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.question.Clear()
			c.autoTimer.Clear()
			return
		case in := <-c.mailbox:
			if in.closed {
				c.handleTransportClosed(in.err)
				continue
			}
			c.handleFrame(ctx, in.frame)
		}
	}
}

// HandleAction processes a host action from a display browser. It only
// forwards commands upstream and never mutates controller state, so it is
// safe to call from the display reader goroutine.
func (c *Controller) HandleAction(action string) {
	switch action {
	case protocol.ActionStartGame:
		if !c.upstreamOpen() {
			return
		}
		if err := c.upstream.Send(protocol.StartGame()); err != nil {
			c.log.Warn("start_game send failed", zap.Error(err))
			return
		}
		// Optimistically disable the start control; nothing is awaited.
		c.sink.Push(protocol.Controls(false))
	case protocol.ActionCancelAutoStart:
		if !c.upstreamOpen() {
			return
		}
		if err := c.upstream.Send(protocol.CancelAutoStart()); err != nil {
			c.log.Warn("cancel_auto_start send failed", zap.Error(err))
			return
		}
		// The panel state flips only when the server echoes the
		// cancellation; only the affordance is disabled here.
		c.sink.Push(protocol.CancelControl(false))
	default:
		c.log.Debug("ignoring unknown display action", zap.String("action", action))
	}
}

func (c *Controller) upstreamOpen() bool {
	return c.upstream != nil && c.upstream.Open()
}

func (c *Controller) handleTransportClosed(err error) {
	c.log.Warn("host socket lost", zap.Error(err))
	c.question.Clear()
	c.autoTimer.Clear()
	c.sink.Push(protocol.Banner(transportLostMessage))
	c.sink.Push(protocol.Controls(false))
	c.sink.Push(protocol.CancelControl(false))
}

func (c *Controller) handleFrame(ctx context.Context, frame []byte) {
	env, err := protocol.ParseEnvelope(frame)
	if err != nil {
		c.log.Warn("dropping malformed message", zap.Error(err))
		return
	}
	switch env.Event {
	case protocol.EventPlayerJoined:
		c.onPlayerJoined(ctx, env)
	case protocol.EventShowQuestion:
		c.onShowQuestion(ctx, env)
	case protocol.EventShowResults:
		c.onShowResults(ctx, env)
	case protocol.EventShowFinal:
		c.onShowFinal(ctx, env)
	case protocol.EventAutoStartScheduled:
		c.onAutoStartScheduled(env)
	case protocol.EventAutoStartCancelled:
		c.onAutoStartCancelled(env)
	case protocol.EventAutoStartTriggered:
		c.onAutoStartTriggered(env)
	case protocol.EventError:
		c.onServerError(env)
	default:
		c.log.Debug("ignoring unknown event", zap.String("event", env.Event))
	}
}

func (c *Controller) onPlayerJoined(ctx context.Context, env protocol.Envelope) {
	var payload protocol.PlayerJoinedPayload
	if err := env.DecodePayload(&payload); err != nil {
		c.log.Warn("dropping player_joined", zap.Error(err))
		return
	}
	c.players = payload.Players
	// Mid-game joins only refresh the roster; the lobby is re-rendered
	// only while it is (or is about to become) the mounted screen.
	if c.current != "" && c.current != ScreenLobby {
		return
	}
	if err := c.ensureState(ctx, ScreenLobby); err != nil {
		return
	}
	c.renderLobby()
}

func (c *Controller) onShowQuestion(ctx context.Context, env protocol.Envelope) {
	var payload protocol.ShowQuestionPayload
	if err := env.DecodePayload(&payload); err != nil {
		c.log.Warn("dropping show_question", zap.Error(err))
		return
	}
	c.clk.Sync(payload.ServerTime)
	if payload.QuestionNumber <= 1 {
		// A new quiz session: wipe the previous session's aggregates.
		c.agg.Reset()
	}
	c.resolveAutoStart()
	if err := c.ensureState(ctx, ScreenQuestion); err != nil {
		return
	}
	c.lastQuestion = payload.Question
	c.renderQuestion(payload)
	c.question.Start(payload.QuestionStartedAt, payload.QuestionDuration)
}

func (c *Controller) onShowResults(ctx context.Context, env protocol.Envelope) {
	var payload protocol.ShowResultsPayload
	if err := env.DecodePayload(&payload); err != nil {
		c.log.Warn("dropping show_results", zap.Error(err))
		return
	}
	c.clk.Sync(payload.ServerTime)
	c.question.Clear()
	summary := c.agg.Observe(payload.Results)
	views := c.agg.EnrichResults(payload.Results, summary)
	board := c.agg.EnrichScoreboard(payload.Scoreboard)
	if err := c.ensureState(ctx, ScreenQuestion); err != nil {
		return
	}
	c.renderResults(payload, views, leaderboard.Rank(board))
}

func (c *Controller) onShowFinal(ctx context.Context, env protocol.Envelope) {
	var payload protocol.ShowFinalPayload
	if err := env.DecodePayload(&payload); err != nil {
		c.log.Warn("dropping show_final", zap.Error(err))
		return
	}
	c.clk.Sync(payload.ServerTime)
	c.question.Clear()
	c.resolveAutoStart()
	board := c.agg.EnrichScoreboard(payload.Scoreboard)
	if err := c.ensureState(ctx, ScreenFinal); err != nil {
		return
	}
	c.renderFinal(leaderboard.Rank(board))
}

func (c *Controller) onAutoStartScheduled(env protocol.Envelope) {
	var payload protocol.AutoStartScheduledPayload
	if err := env.DecodePayload(&payload); err != nil {
		c.log.Warn("dropping auto_start_scheduled", zap.Error(err))
		return
	}
	c.clk.Sync(payload.ServerTime)
	at, ok := clock.ParseISO(payload.ScheduledAt)
	if !ok {
		c.log.Warn("dropping auto_start_scheduled: bad scheduled_at",
			zap.String("scheduled_at", payload.ScheduledAt))
		return
	}
	c.auto = autoStart{
		phase:       AutoScheduled,
		scheduledAt: at,
		delay:       payload.Delay,
		origin:      payload.Origin,
		message:     autoStartScheduledMessage,
	}
	// Seed the panel with the current remaining time so it never shows a
	// blank countdown before the first tick paint.
	initial := formatRemaining(at.Sub(c.clk.Now()))
	c.sink.Push(protocol.AutoStartPanel(AutoScheduled, c.auto.message, initial, true, c.upstreamOpen()))
	c.autoTimer.StartUntil(at)
}

func (c *Controller) onAutoStartCancelled(env protocol.Envelope) {
	var payload protocol.AutoStartCancelledPayload
	if err := env.DecodePayload(&payload); err != nil {
		c.log.Warn("dropping auto_start_cancelled", zap.Error(err))
		return
	}
	c.clk.Sync(payload.ServerTime)
	c.autoTimer.Clear()
	c.auto.phase = AutoCancelled
	c.auto.origin = payload.Origin
	c.auto.message = autoStartCancelMessage(payload.Reason)
	c.sink.Push(protocol.AutoStartPanel(AutoCancelled, c.auto.message, "", true, false))
}

func (c *Controller) onAutoStartTriggered(env protocol.Envelope) {
	var payload protocol.AutoStartTriggeredPayload
	if err := env.DecodePayload(&payload); err != nil {
		c.log.Warn("dropping auto_start_triggered", zap.Error(err))
		return
	}
	c.clk.Sync(payload.ServerTime)
	c.autoTimer.Clear()
	c.auto.phase = AutoTriggered
	c.auto.origin = payload.Origin
	c.auto.message = autoStartTriggeredMessage
	c.sink.Push(protocol.AutoStartPanel(AutoTriggered, c.auto.message, "", true, false))
}

func (c *Controller) onServerError(env protocol.Envelope) {
	var payload protocol.ErrorPayload
	if err := env.DecodePayload(&payload); err != nil {
		c.log.Warn("dropping error event", zap.Error(err))
		return
	}
	// Surfaced verbatim; the server speaks the display's language.
	c.sink.Push(protocol.Banner(payload.Message))
}

// resolveAutoStart returns the panel to idle and hides it. Called when
// gameplay begins so no residual countdown or message survives.
func (c *Controller) resolveAutoStart() {
	if c.auto.phase == AutoIdle {
		return
	}
	c.autoTimer.Clear()
	c.auto = autoStart{phase: AutoIdle}
	c.sink.Push(protocol.AutoStartPanel(AutoIdle, "", "", false, false))
}

// ensureState mounts the named screen if it is not already mounted. The
// swap is all-or-nothing: a fragment failure leaves the previous screen in
// place and surfaces a banner. currentState advances only after the swap
// completes.
func (c *Controller) ensureState(ctx context.Context, name string) error {
	if c.current == name {
		return nil
	}
	html, err := c.fragments.Fragment(ctx, name)
	if err != nil {
		c.log.Error("fragment load failed", zap.String("screen", name), zap.Error(err))
		c.sink.Push(protocol.Banner(fragmentErrorMessage))
		return err
	}
	c.sink.Swap(protocol.ScreenSwap(name, html))
	c.current = name
	return nil
}

// Current reports the mounted screen name. Owned by the Run goroutine;
// exposed for sequential use in tests.
func (c *Controller) Current() string {
	return c.current
}
