package tui

import "github.com/charmbracelet/lipgloss"

// Spinner is a small braille loading spinner advanced by TickMsg.
type Spinner struct {
	frames []string
	frame  int
}

// NewSpinner creates a new spinner.
func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	}
}

// Next advances the spinner to the next frame.
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// View returns the current spinner frame.
func (s *Spinner) View() string {
	return spinnerStyle.Render(s.frames[s.frame])
}

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
