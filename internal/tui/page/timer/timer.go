// Package timer renders the session dial: label, remaining time, progress
// and round counter.
package timer

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/guilhermegouw/pomo/internal/colorcodec"
	"github.com/guilhermegouw/pomo/internal/schema"
	"github.com/guilhermegouw/pomo/internal/tui/components/logo"
	"github.com/guilhermegouw/pomo/internal/tui/styles"
)

const maxBarWidth = 48

// Model is the timer page.
type Model struct {
	settings schema.Settings
	state    schema.State
	version  string
	bar      progress.Model
	width    int
	height   int
}

// New creates the timer page.
func New(settings schema.Settings, state schema.State, version string) *Model {
	return &Model{
		settings: settings,
		state:    state,
		version:  version,
		bar:      progress.New(progress.WithoutPercentage(), progress.WithWidth(maxBarWidth)),
	}
}

// SetSettings replaces the settings used for durations and labels.
func (m *Model) SetSettings(s schema.Settings) {
	m.settings = s
}

// SetState replaces the displayed timer state.
func (m *Model) SetState(s schema.State) {
	m.state = s
}

// State returns the displayed timer state.
func (m *Model) State() schema.State {
	return m.state
}

// SetSize sets the page size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.SetWidth(max(10, min(maxBarWidth, width-8)))
}

// Duration returns the configured length in seconds of a session kind.
func Duration(s schema.Settings, kind schema.SessionKind) int {
	switch kind {
	case schema.KindShortBreak:
		return s.ShortBreakDuration
	case schema.KindLongBreak:
		return s.LongBreakDuration
	default:
		return s.PomodoroDuration
	}
}

// Label returns the session label, or the configured default for its kind.
func Label(s schema.Settings, session schema.Session) string {
	if session.Label != nil && *session.Label != "" {
		return *session.Label
	}
	switch session.SessionType {
	case schema.KindShortBreak:
		return s.DefaultShortBreakLabel
	case schema.KindLongBreak:
		return s.DefaultLongBreakLabel
	default:
		return s.DefaultFocusLabel
	}
}

// FormatClock renders seconds as mm:ss. Negative input renders as 00:00.
func FormatClock(seconds int) string {
	seconds = max(0, seconds)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Remaining is the number of seconds left in the current session.
func (m *Model) Remaining() int {
	return max(0, Duration(m.settings, m.state.CurrentSession.SessionType)-m.state.CurrentSession.CurrentTime)
}

// Fraction is how much of the current session has elapsed, in [0, 1].
func (m *Model) Fraction() float64 {
	total := Duration(m.settings, m.state.CurrentSession.SessionType)
	if total <= 0 {
		return 0
	}
	return min(1, max(0, float64(m.state.CurrentSession.CurrentTime)/float64(total)))
}

// Color is the dial colour for the current session and progress.
func (m *Model) Color() colorcodec.RGB {
	return styles.CurrentTheme().RoundColor(m.state.CurrentSession.SessionType, m.Fraction())
}

// View renders the page.
func (m *Model) View() string {
	t := styles.CurrentTheme()
	session := m.state.CurrentSession
	dial := styles.RGBColor(m.Color())

	label := ansi.Truncate(Label(m.settings, session), max(1, m.width-4), "…")

	m.bar.FullColor = dial
	m.bar.EmptyColor = t.BackgroundLight

	clock := lipgloss.NewStyle().Foreground(dial).Bold(true).Render(FormatClock(m.Remaining()))

	rounds := t.S().Muted.Render(fmt.Sprintf("%d/%d", m.state.CurrentWorkRoundNumber, m.settings.MaxRoundNumber))
	if note := statusNote(session.Status); note != "" {
		rounds += t.S().Subtle.Render("  " + note)
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		logo.RenderWithVersion(m.version),
		"",
		t.S().Subtitle.Render(label),
		"",
		clock,
		"",
		m.bar.ViewAs(m.Fraction()),
		"",
		rounds,
	)
}

func statusNote(s schema.Status) string {
	switch s {
	case schema.StatusPaused:
		return "paused"
	case schema.StatusNotStarted:
		return "ready"
	default:
		return ""
	}
}
