package schema

import (
	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/events"
)

// ToHost converts UI-side settings into the host configuration record.
func ToHost(s Settings) config.Config {
	return config.Config{
		AlwaysOnTop:            s.AlwaysOnTop,
		AutoQuit:               kindPtrToHost(s.AutoQuit),
		AutoStartBreakTimer:    s.AutoStartBreakTimer,
		AutoStartOnAppStartup:  s.AutoStartOnAppStartup,
		AutoStartWorkTimer:     s.AutoStartWorkTimer,
		DefaultFocusLabel:      s.DefaultFocusLabel,
		DefaultLongBreakLabel:  s.DefaultLongBreakLabel,
		DefaultShortBreakLabel: s.DefaultShortBreakLabel,
		DesktopNotifications:   s.DesktopNotifications,
		FocusAudio:             copyString(s.FocusAudio),
		FocusDuration:          s.PomodoroDuration,
		LongBreakAudio:         copyString(s.LongBreakAudio),
		LongBreakDuration:      s.LongBreakDuration,
		MaxRoundNumber:         s.MaxRoundNumber,
		MaxSessionDuration:     s.MaxSessionDuration,
		MinimizeToTray:         s.MinimizeToTray,
		MinimizeToTrayOnClose:  s.MinimizeToTrayOnClose,
		Muted:                  s.Muted,
		SessionFile:            s.SessionFile,
		ShortBreakAudio:        copyString(s.ShortBreakAudio),
		ShortBreakDuration:     s.ShortBreakDuration,
		StartMinimized:         s.StartMinimized,
		SystemStartupAutoStart: s.SystemStartupAutoStart,
		Theme:                  s.Theme,
		TickSoundsDuringWork:   s.TickSoundsDuringWork,
		TickSoundsDuringBreak:  s.TickSoundsDuringBreak,
	}
}

// ToUI converts the host configuration record into UI-side settings.
func ToUI(c config.Config) Settings {
	return Settings{
		AlwaysOnTop:            c.AlwaysOnTop,
		AutoQuit:               kindPtrToUI(c.AutoQuit),
		AutoStartBreakTimer:    c.AutoStartBreakTimer,
		AutoStartOnAppStartup:  c.AutoStartOnAppStartup,
		AutoStartWorkTimer:     c.AutoStartWorkTimer,
		DefaultFocusLabel:      c.DefaultFocusLabel,
		DefaultLongBreakLabel:  c.DefaultLongBreakLabel,
		DefaultShortBreakLabel: c.DefaultShortBreakLabel,
		DesktopNotifications:   c.DesktopNotifications,
		FocusAudio:             copyString(c.FocusAudio),
		PomodoroDuration:       c.FocusDuration,
		LongBreakAudio:         copyString(c.LongBreakAudio),
		LongBreakDuration:      c.LongBreakDuration,
		MaxRoundNumber:         c.MaxRoundNumber,
		MaxSessionDuration:     c.MaxSessionDuration,
		MinimizeToTray:         c.MinimizeToTray,
		MinimizeToTrayOnClose:  c.MinimizeToTrayOnClose,
		Muted:                  c.Muted,
		SessionFile:            c.SessionFile,
		ShortBreakAudio:        copyString(c.ShortBreakAudio),
		ShortBreakDuration:     c.ShortBreakDuration,
		StartMinimized:         c.StartMinimized,
		SystemStartupAutoStart: c.SystemStartupAutoStart,
		Theme:                  c.Theme,
		TickSoundsDuringWork:   c.TickSoundsDuringWork,
		TickSoundsDuringBreak:  c.TickSoundsDuringBreak,
	}
}

// ThemeToUI converts a host theme into its UI shape.
func ThemeToUI(t config.Theme) Theme {
	return Theme{
		Name: t.Name,
		Colors: ThemeColors{
			Accent:             t.Colors.Accent,
			Background:         t.Colors.Background,
			BackgroundLight:    t.Colors.BackgroundLight,
			BackgroundLightest: t.Colors.BackgroundLightest,
			FocusRound:         t.Colors.FocusRound,
			FocusRoundMiddle:   t.Colors.FocusRoundMiddle,
			FocusRoundEnd:      t.Colors.FocusRoundEnd,
			Foreground:         t.Colors.Foreground,
			ForegroundDarker:   t.Colors.ForegroundDarker,
			ForegroundDarkest:  t.Colors.ForegroundDarkest,
			LongRound:          t.Colors.LongRound,
			ShortRound:         t.Colors.ShortRound,
		},
	}
}

// ThemesToUI converts a list of host themes.
func ThemesToUI(themes []config.Theme) []Theme {
	out := make([]Theme, 0, len(themes))
	for _, t := range themes {
		out = append(out, ThemeToUI(t))
	}
	return out
}

// StateToUI converts a host timer snapshot into its UI shape.
func StateToUI(s events.PomodoroState) State {
	return State{
		CurrentSession: Session{
			CurrentTime: s.CurrentSession.CurrentTime,
			Label:       copyString(s.CurrentSession.Label),
			SessionType: KindToUI(s.CurrentSession.SessionType),
			Status:      StatusToUI(s.CurrentSession.Status),
		},
		CurrentWorkRoundNumber: s.CurrentWorkRoundNumber,
	}
}

// KindToHost maps a UI session kind to the host spelling.
// Unknown values pass through unchanged so the host can reject them.
func KindToHost(k SessionKind) config.SessionType {
	switch k {
	case KindFocus:
		return config.SessionFocus
	case KindShortBreak:
		return config.SessionShortBreak
	case KindLongBreak:
		return config.SessionLongBreak
	default:
		return config.SessionType(k)
	}
}

// KindToUI maps a host session type to the UI spelling.
func KindToUI(t config.SessionType) SessionKind {
	switch t {
	case config.SessionFocus:
		return KindFocus
	case config.SessionShortBreak:
		return KindShortBreak
	case config.SessionLongBreak:
		return KindLongBreak
	default:
		return SessionKind(t)
	}
}

// StatusToHost maps a UI status to the host spelling.
func StatusToHost(s Status) events.SessionStatus {
	switch s {
	case StatusNotStarted:
		return events.StatusNotStarted
	case StatusPaused:
		return events.StatusPaused
	case StatusRunning:
		return events.StatusRunning
	default:
		return events.SessionStatus(s)
	}
}

// StatusToUI maps a host status to the UI spelling.
func StatusToUI(s events.SessionStatus) Status {
	switch s {
	case events.StatusNotStarted:
		return StatusNotStarted
	case events.StatusPaused:
		return StatusPaused
	case events.StatusRunning:
		return StatusRunning
	default:
		return Status(s)
	}
}

func kindPtrToHost(k *SessionKind) *config.SessionType {
	if k == nil {
		return nil
	}
	t := KindToHost(*k)
	return &t
}

func kindPtrToUI(t *config.SessionType) *SessionKind {
	if t == nil {
		return nil
	}
	k := KindToUI(*t)
	return &k
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
