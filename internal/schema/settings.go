// Package schema holds the UI-side records exchanged with the UI runtime and
// the transcoder between them and the host-side records.
//
// The two sides are declared independently and use different naming
// conventions (camelCase on the UI side, snake_case on the host side). Every
// mapping is written out field by field; CheckSync verifies that the two
// declarations still cover the same fields.
package schema

// SessionKind is the UI spelling of a session type.
type SessionKind string

// UI session kinds.
const (
	KindFocus      SessionKind = "focus"
	KindShortBreak SessionKind = "shortBreak"
	KindLongBreak  SessionKind = "longBreak"
)

// Settings is the UI-side configuration record.
//
//nolint:govet // Field order mirrors config.Config.
type Settings struct {
	AlwaysOnTop            bool         `json:"alwaysOnTop"`
	AutoQuit               *SessionKind `json:"autoQuit"`
	AutoStartBreakTimer    bool         `json:"autoStartBreakTimer"`
	AutoStartOnAppStartup  bool         `json:"autoStartOnAppStartup"`
	AutoStartWorkTimer     bool         `json:"autoStartWorkTimer"`
	DefaultFocusLabel      string       `json:"defaultFocusLabel"`
	DefaultLongBreakLabel  string       `json:"defaultLongBreakLabel"`
	DefaultShortBreakLabel string       `json:"defaultShortBreakLabel"`
	DesktopNotifications   bool         `json:"desktopNotifications"`
	FocusAudio             *string      `json:"focusAudio"`
	PomodoroDuration       int          `json:"pomodoroDuration"`
	LongBreakAudio         *string      `json:"longBreakAudio"`
	LongBreakDuration      int          `json:"longBreakDuration"`
	MaxRoundNumber         int          `json:"maxRoundNumber"`
	MaxSessionDuration     int          `json:"maxSessionDuration"`
	MinimizeToTray         bool         `json:"minimizeToTray"`
	MinimizeToTrayOnClose  bool         `json:"minimizeToTrayOnClose"`
	Muted                  bool         `json:"muted"`
	SessionFile            string       `json:"sessionFile"`
	ShortBreakAudio        *string      `json:"shortBreakAudio"`
	ShortBreakDuration     int          `json:"shortBreakDuration"`
	StartMinimized         bool         `json:"startMinimized"`
	SystemStartupAutoStart bool         `json:"systemStartupAutoStart"`
	Theme                  string       `json:"theme"`
	TickSoundsDuringWork   bool         `json:"tickSoundsDuringWork"`
	TickSoundsDuringBreak  bool         `json:"tickSoundsDuringBreak"`
}

// ThemeColors is the UI-side colour set of a theme.
type ThemeColors struct {
	Accent             string `json:"accent"`
	Background         string `json:"background"`
	BackgroundLight    string `json:"backgroundLight"`
	BackgroundLightest string `json:"backgroundLightest"`
	FocusRound         string `json:"focusRound"`
	FocusRoundMiddle   string `json:"focusRoundMiddle"`
	FocusRoundEnd      string `json:"focusRoundEnd"`
	Foreground         string `json:"foreground"`
	ForegroundDarker   string `json:"foregroundDarker"`
	ForegroundDarkest  string `json:"foregroundDarkest"`
	LongRound          string `json:"longRound"`
	ShortRound         string `json:"shortRound"`
}

// Theme is the UI-side named colour set.
type Theme struct {
	Colors ThemeColors `json:"colors"`
	Name   string      `json:"name"`
}

// Status is the UI spelling of a session status.
type Status string

// UI session statuses.
const (
	StatusNotStarted Status = "notStarted"
	StatusPaused     Status = "paused"
	StatusRunning    Status = "running"
)

// Session is the UI-side view of the current session.
type Session struct { //nolint:govet // fieldalignment: preserving logical field order
	CurrentTime int         `json:"currentTime"`
	Label       *string     `json:"label"`
	SessionType SessionKind `json:"sessionType"`
	Status      Status      `json:"status"`
}

// State is the UI-side timer snapshot.
type State struct {
	CurrentSession         Session `json:"currentSession"`
	CurrentWorkRoundNumber int     `json:"currentWorkRoundNumber"`
}
