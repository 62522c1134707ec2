package web

// RoomInfo is the static header context for the display shell page.
type RoomInfo struct {
	Title   string
	RoomID  string
	JoinURL string
	QRURL   string
}
