package protocol

// Command is a host action forwarded to the quiz server. Commands are
// fire-and-forget; no acknowledgment is awaited.
type Command struct {
	Action string `json:"action"`
	Origin string `json:"origin,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func StartGame() Command {
	return Command{Action: "start_game"}
}

func CancelAutoStart() Command {
	return Command{
		Action: "cancel_auto_start",
		Origin: "host",
		Reason: "host_cancelled",
	}
}

// HostAction is what a display browser sends back over the display socket.
type HostAction struct {
	Action string `json:"action"`
}

const (
	ActionStartGame       = "start_game"
	ActionCancelAutoStart = "cancel_auto_start"
	ActionSwapDone        = "swap_done"
)
