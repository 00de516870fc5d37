package tui

import "time"

// tickMsg asks the model to re-read the app's page.
type tickMsg struct {
	Time time.Time
}

// actionDoneMsg is sent when a network-bound action returns.
type actionDoneMsg struct {
	Action string
	Err    error
}
