package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const pollInterval = 200 * time.Millisecond

// runAction runs fn off the UI goroutine. The app keeps its own state, so
// the message only carries the outcome for logging.
func runAction(ctx context.Context, name string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{Action: name, Err: fn(ctx)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg{Time: t}
	})
}
