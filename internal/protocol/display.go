package protocol

// Display message types pushed to connected display browsers.
const (
	DisplayScreen    = "screen"
	DisplayHTML      = "html"
	DisplayCountdown = "countdown"
	DisplayAutoStart = "auto_start"
	DisplayBanner    = "banner"
	DisplayControls  = "controls"
)

// Targets for controls messages.
const (
	ControlStart  = "start"
	ControlCancel = "cancel"
)

// DisplayMessage is a single instruction for the display shim: mount a
// screen, patch an element, tick a countdown, or flip a control. Countdown,
// Visible and Enabled are always serialized so the shim never reads an
// absent key.
type DisplayMessage struct {
	Type      string `json:"type"`
	Screen    string `json:"screen,omitempty"`
	Selector  string `json:"selector,omitempty"`
	Mode      string `json:"mode,omitempty"`
	HTML      string `json:"html,omitempty"`
	Text      string `json:"text,omitempty"`
	State     string `json:"state,omitempty"`
	Control   string `json:"control,omitempty"`
	Countdown string `json:"countdown"`
	Visible   bool   `json:"visible"`
	Warning   bool   `json:"warning,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// ScreenSwap mounts a fragment as the new active screen.
func ScreenSwap(name, html string) DisplayMessage {
	return DisplayMessage{Type: DisplayScreen, Screen: name, HTML: html, Visible: true}
}

// HTMLUpdate replaces the inner content of the element at selector.
func HTMLUpdate(selector, html string) DisplayMessage {
	return DisplayMessage{Type: DisplayHTML, Selector: selector, Mode: "inner", HTML: html, Visible: true}
}

func CountdownTick(text string, warning, visible bool) DisplayMessage {
	return DisplayMessage{Type: DisplayCountdown, Text: text, Warning: warning, Visible: visible}
}

func AutoStartPanel(state, message, countdown string, visible, cancellable bool) DisplayMessage {
	return DisplayMessage{
		Type:      DisplayAutoStart,
		State:     state,
		Text:      message,
		Countdown: countdown,
		Visible:   visible,
		Enabled:   cancellable,
	}
}

func Banner(message string) DisplayMessage {
	return DisplayMessage{Type: DisplayBanner, Text: message, Visible: true}
}

// Controls toggles the start-game control.
func Controls(enabled bool) DisplayMessage {
	return DisplayMessage{Type: DisplayControls, Control: ControlStart, Enabled: enabled, Visible: true}
}

// CancelControl toggles the cancel-auto-start affordance without touching
// the rest of the panel.
func CancelControl(enabled bool) DisplayMessage {
	return DisplayMessage{Type: DisplayControls, Control: ControlCancel, Enabled: enabled, Visible: true}
}
