package timer

import (
	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/pomo/internal/tui/styles"
)

// Status represents what the status bar shows on the left.
type Status int

// Status bar states.
const (
	StatusReady Status = iota
	StatusInfo
	StatusError
)

// StatusBar shows the latest message and the key help.
type StatusBar struct {
	status Status
	msg    string
	muted  bool
	width  int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{
		status: StatusReady,
	}
}

// SetInfo shows an informational message.
func (s *StatusBar) SetInfo(msg string) {
	s.status = StatusInfo
	s.msg = msg
}

// SetError shows an error message.
func (s *StatusBar) SetError(msg string) {
	s.status = StatusError
	s.msg = msg
}

// Clear returns to the ready state.
func (s *StatusBar) Clear() {
	s.status = StatusReady
	s.msg = ""
}

// Message returns the current message.
func (s *StatusBar) Message() string {
	return s.msg
}

// SetMuted shows or hides the muted marker.
func (s *StatusBar) SetMuted(muted bool) {
	s.muted = muted
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar with help on the right.
func (s *StatusBar) View(help string) string {
	t := styles.CurrentTheme()

	var left string
	switch s.status {
	case StatusReady:
		left = t.S().Muted.Render("Ready")
	case StatusInfo:
		left = t.S().Info.Render(s.msg)
	case StatusError:
		left = t.S().Error.Render("Error: " + s.msg)
	}
	if s.muted {
		left += t.S().Subtle.Render("  muted")
	}

	barStyle := lipgloss.NewStyle().
		Width(s.width).
		Padding(0, 1).
		Background(t.BackgroundLight)

	gap := max(1, s.width-lipgloss.Width(left)-lipgloss.Width(help)-4)

	return barStyle.Render(left + lipgloss.NewStyle().Width(gap).Render("") + help)
}
