package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/TalentTrack/internal/ops"
)

// Message types shared across UI models
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// outcomeMsg carries one dispatcher phase change into the update loop
type outcomeMsg struct {
	outcome ops.Outcome
}

// waitForOutcome blocks on the dispatcher subscription and converts the
// next phase change into a message. The caller re-issues it after every
// outcomeMsg to keep the channel drained.
func waitForOutcome(outcomes <-chan ops.Outcome) tea.Cmd {
	return func() tea.Msg {
		outcome, ok := <-outcomes
		if !ok {
			return nil
		}
		return outcomeMsg{outcome: outcome}
	}
}

// dispatch runs one dispatcher call off the update loop. Results land
// in the store and arrive back as outcome messages, so the command
// itself produces no message.
func dispatch(run func()) tea.Cmd {
	return func() tea.Msg {
		run()
		return nil
	}
}
