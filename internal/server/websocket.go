package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"quiz-screen/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ActionFunc receives host actions sent back from a display browser.
type ActionFunc func(action string)

// Hub fans display messages out to connected browsers and retains the
// latest message of each kind so a display that connects late (or reloads)
// is brought to the current picture immediately.
type Hub struct {
	log     *zap.Logger
	wall    clockwork.Clock
	ackWait time.Duration

	mu      sync.Mutex
	conns   map[*websocket.Conn]string
	actions ActionFunc
	pending chan struct{}

	lastSwap  *protocol.DisplayMessage
	updates   map[string]protocol.DisplayMessage
	order     []string
	countdown *protocol.DisplayMessage
	auto      *protocol.DisplayMessage
	banner    *protocol.DisplayMessage
	controls  map[string]protocol.DisplayMessage
}

func NewHub(log *zap.Logger, wall clockwork.Clock, ackWait time.Duration) *Hub {
	return &Hub{
		log:     log,
		wall:    wall,
		ackWait: ackWait,
		conns:    make(map[*websocket.Conn]string),
		updates:  make(map[string]protocol.DisplayMessage),
		controls: make(map[string]protocol.DisplayMessage),
	}
}

// SetActionHandler wires the callback for display actions. Must be called
// before the first display connects.
func (h *Hub) SetActionHandler(fn ActionFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.actions = fn
}

// HandleUpgrade upgrades a display connection, replays the retained state,
// and reads actions until the connection drops.
func (h *Hub) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("display upgrade failed", zap.Error(err))
		return
	}
	id := uuid.NewString()

	h.mu.Lock()
	h.conns[conn] = id
	h.replayLocked(conn)
	actions := h.actions
	h.mu.Unlock()
	h.log.Info("display connected", zap.String("conn", id))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.remove(conn, id)
			return
		}
		var action protocol.HostAction
		if err := json.Unmarshal(data, &action); err != nil {
			continue
		}
		switch action.Action {
		case protocol.ActionSwapDone:
			h.ackSwap()
		case "":
		default:
			if actions != nil {
				actions(action.Action)
			}
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn, id string) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
	h.log.Info("display disconnected", zap.String("conn", id))
}

// replayLocked writes the retained picture to a freshly connected display:
// the mounted screen first, then container contents and overlays.
func (h *Hub) replayLocked(conn *websocket.Conn) {
	if h.lastSwap != nil {
		h.writeLocked(conn, *h.lastSwap)
	}
	for _, selector := range h.order {
		h.writeLocked(conn, h.updates[selector])
	}
	if h.countdown != nil {
		h.writeLocked(conn, *h.countdown)
	}
	if h.auto != nil {
		h.writeLocked(conn, *h.auto)
	}
	if h.banner != nil {
		h.writeLocked(conn, *h.banner)
	}
	for _, control := range []string{protocol.ControlStart, protocol.ControlCancel} {
		if msg, ok := h.controls[control]; ok {
			h.writeLocked(conn, msg)
		}
	}
}

func (h *Hub) writeLocked(conn *websocket.Conn, msg protocol.DisplayMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		delete(h.conns, conn)
		_ = conn.Close()
	}
}

// Push broadcasts a message to every connected display.
func (h *Hub) Push(msg protocol.DisplayMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retainLocked(msg)
	h.broadcastLocked(msg)
}

// Swap broadcasts a screen mount and blocks until a display acknowledges it
// or the fallback timeout elapses. With no displays connected it returns
// immediately; the retained state still advances.
func (h *Hub) Swap(msg protocol.DisplayMessage) {
	h.mu.Lock()
	h.retainLocked(msg)
	if len(h.conns) == 0 {
		h.mu.Unlock()
		return
	}
	done := make(chan struct{})
	h.pending = done
	h.broadcastLocked(msg)
	h.mu.Unlock()

	select {
	case <-done:
	case <-h.wall.After(h.ackWait):
		h.log.Debug("swap ack timed out", zap.String("screen", msg.Screen))
		h.mu.Lock()
		if h.pending == done {
			h.pending = nil
		}
		h.mu.Unlock()
	}
}

func (h *Hub) ackSwap() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending != nil {
		close(h.pending)
		h.pending = nil
	}
}

func (h *Hub) broadcastLocked(msg protocol.DisplayMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.conns, conn)
			_ = conn.Close()
		}
	}
}

func (h *Hub) retainLocked(msg protocol.DisplayMessage) {
	switch msg.Type {
	case protocol.DisplayScreen:
		// A new screen invalidates every container filled on the old one.
		retained := msg
		h.lastSwap = &retained
		h.updates = make(map[string]protocol.DisplayMessage)
		h.order = h.order[:0]
	case protocol.DisplayHTML:
		if _, seen := h.updates[msg.Selector]; !seen {
			h.order = append(h.order, msg.Selector)
		}
		h.updates[msg.Selector] = msg
	case protocol.DisplayCountdown:
		retained := msg
		h.countdown = &retained
	case protocol.DisplayAutoStart:
		// Countdown-only ticks refine the retained panel instead of
		// replacing it, so a reload still sees the full panel state.
		if msg.State == "tick" && h.auto != nil {
			h.auto.Countdown = msg.Countdown
			return
		}
		retained := msg
		h.auto = &retained
	case protocol.DisplayBanner:
		retained := msg
		h.banner = &retained
	case protocol.DisplayControls:
		h.controls[msg.Control] = msg
	}
}

// Conns reports the number of connected displays.
func (h *Hub) Conns() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
