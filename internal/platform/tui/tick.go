// Package tui provides the Bubble Tea front end for the dungeon: the play
// screen, the level picker, the scoreboard and the SSH server serving them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultCloseDelay is how long a finished run stays on screen before the
// program exits on its own.
const DefaultCloseDelay = 4 * time.Second

// closeMsg is sent when the close delay for a finished run expires.
type closeMsg struct {
	runID string
}

// closeAfter returns a command that sends a closeMsg for runID after d.
func closeAfter(d time.Duration, runID string) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return closeMsg{runID: runID}
	})
}
