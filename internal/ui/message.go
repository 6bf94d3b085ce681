package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg carries the time an animation frame fired.
type frameMsg time.Time

var _ tea.Msg = frameMsg{}

// frameCmd schedules the next animation frame.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
