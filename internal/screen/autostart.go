package screen

import "time"

// Auto-start panel states. Cancelled and triggered are transient display
// states that resolve back to idle once gameplay begins.
const (
	AutoIdle      = "idle"
	AutoScheduled = "scheduled"
	AutoCancelled = "cancelled"
	AutoTriggered = "triggered"

	// autoTick marks countdown-only repaints of the panel.
	autoTick = "tick"
)

type autoStart struct {
	phase       string
	scheduledAt time.Time
	delay       float64
	origin      string
	message     string
}

const (
	autoStartScheduledMessage = "Игра начнётся автоматически"
	autoStartTriggeredMessage = "Игра начинается…"
	autoStartCancelFallback   = "Автозапуск отменён."
)

// Cancellation reason codes the quiz server emits, mapped to what the big
// screen shows. Unrecognized codes fall back to the generic message.
var autoStartCancelMessages = map[string]string{
	"host_cancelled": "Автозапуск отменён ведущим.",
	"manual_start":   "Игра запущена вручную.",
	"room_closed":    "Комната закрыта.",
	"no_players":     "Автозапуск отменён: в комнате нет игроков.",
}

func autoStartCancelMessage(reason string) string {
	if message, ok := autoStartCancelMessages[reason]; ok {
		return message
	}
	return autoStartCancelFallback
}
