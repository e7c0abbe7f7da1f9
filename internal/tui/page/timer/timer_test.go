package timer

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/schema"
	"github.com/guilhermegouw/pomo/internal/tui/styles"
)

func session(kind schema.SessionKind, current int, status schema.Status) schema.State {
	return schema.State{
		CurrentSession: schema.Session{
			CurrentTime: current,
			SessionType: kind,
			Status:      status,
		},
		CurrentWorkRoundNumber: 2,
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{1500, "25:00"},
		{6000, "100:00"},
		{-5, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	settings := schema.ToUI(config.Default())
	custom := "Write report"

	tests := []struct {
		name    string
		session schema.Session
		want    string
	}{
		{"focus default", schema.Session{SessionType: schema.KindFocus}, "Focus"},
		{"short default", schema.Session{SessionType: schema.KindShortBreak}, "Short break"},
		{"long default", schema.Session{SessionType: schema.KindLongBreak}, "Long break"},
		{"custom", schema.Session{SessionType: schema.KindFocus, Label: &custom}, custom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(settings, tt.session); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	settings := schema.ToUI(config.Default())

	tests := []struct {
		name      string
		state     schema.State
		remaining int
		fraction  float64
	}{
		{"fresh focus", session(schema.KindFocus, 0, schema.StatusNotStarted), 1500, 0},
		{"half focus", session(schema.KindFocus, 750, schema.StatusRunning), 750, 0.5},
		{"short break", session(schema.KindShortBreak, 60, schema.StatusRunning), 240, 0.2},
		{"overrun", session(schema.KindLongBreak, 5000, schema.StatusRunning), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(settings, tt.state, "")
			if got := m.Remaining(); got != tt.remaining {
				t.Errorf("Remaining() = %d, want %d", got, tt.remaining)
			}
			if got := m.Fraction(); got != tt.fraction {
				t.Errorf("Fraction() = %v, want %v", got, tt.fraction)
			}
		})
	}

	t.Run("zero duration", func(t *testing.T) {
		s := settings
		s.PomodoroDuration = 0
		if got := New(s, session(schema.KindFocus, 3, schema.StatusRunning), "").Fraction(); got != 0 {
			t.Errorf("Fraction() = %v, want 0", got)
		}
	})
}

func TestColor(t *testing.T) {
	defer styles.SetTheme(nil)
	theme := styles.CurrentTheme()
	settings := schema.ToUI(config.Default())

	if got := New(settings, session(schema.KindFocus, 0, schema.StatusRunning), "").Color(); got != theme.FocusRound {
		t.Errorf("focus start colour = %v, want %v", got, theme.FocusRound)
	}
	if got := New(settings, session(schema.KindFocus, 1500, schema.StatusRunning), "").Color(); got != theme.FocusRoundEnd {
		t.Errorf("focus end colour = %v, want %v", got, theme.FocusRoundEnd)
	}
	if got := New(settings, session(schema.KindLongBreak, 10, schema.StatusRunning), "").Color(); got != theme.LongRound {
		t.Errorf("long break colour = %v, want %v", got, theme.LongRound)
	}
}

func TestView(t *testing.T) {
	settings := schema.ToUI(config.Default())

	t.Run("paused", func(t *testing.T) {
		m := New(settings, session(schema.KindShortBreak, 30, schema.StatusPaused), "2.1.0")
		m.SetSize(80, 24)

		view := ansi.Strip(m.View())
		for _, want := range []string{"Short break", "04:30", "2/4", "paused", "2.1.0"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q:\n%s", want, view)
			}
		}
	})

	t.Run("long label is truncated", func(t *testing.T) {
		label := strings.Repeat("x", 100)
		state := session(schema.KindFocus, 0, schema.StatusRunning)
		state.CurrentSession.Label = &label

		m := New(settings, state, "")
		m.SetSize(40, 20)

		view := ansi.Strip(m.View())
		if strings.Contains(view, label) {
			t.Error("label was not truncated")
		}
		if !strings.Contains(view, "…") {
			t.Error("truncated label has no ellipsis")
		}
		if strings.Contains(view, "paused") || strings.Contains(view, "ready") {
			t.Error("running session should carry no status note")
		}
	})

	t.Run("settings update", func(t *testing.T) {
		m := New(settings, session(schema.KindFocus, 0, schema.StatusNotStarted), "")
		s := settings
		s.PomodoroDuration = 600
		m.SetSettings(s)
		m.SetSize(80, 24)
		if !strings.Contains(ansi.Strip(m.View()), "10:00") {
			t.Error("new duration not shown")
		}
	})
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar()
	s.SetWidth(60)

	if !strings.Contains(ansi.Strip(s.View("q quit")), "Ready") {
		t.Error("ready state not shown")
	}

	s.SetError("disk full")
	view := ansi.Strip(s.View(""))
	if !strings.Contains(view, "Error: disk full") {
		t.Errorf("view = %q", view)
	}

	s.SetMuted(true)
	if !strings.Contains(ansi.Strip(s.View("")), "muted") {
		t.Error("muted marker not shown")
	}

	s.Clear()
	if s.Message() != "" {
		t.Errorf("Message() after Clear = %q", s.Message())
	}
}
