// Package config provides the host-side configuration record for pomo and
// its on-disk persistence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/tidwall/sjson"
)

const appName = "pomo"

// SessionType identifies the kind of pomodoro session.
type SessionType string

// Session type constants, spelled as the host persists them.
const (
	SessionFocus      SessionType = "focus"
	SessionShortBreak SessionType = "shortbreak"
	SessionLongBreak  SessionType = "longbreak"
)

// Valid reports whether t is one of the known session types.
func (t SessionType) Valid() bool {
	switch t {
	case SessionFocus, SessionShortBreak, SessionLongBreak:
		return true
	}
	return false
}

// Config is the host-side configuration record.
// Durations are whole seconds. Optional audio paths are nil when the
// built-in sound should be used.
//
// Every field here has a counterpart in schema.Settings; schema.CheckSync
// fails when the two drift apart.
//
//nolint:govet // Field order mirrors the persisted JSON for readability.
type Config struct {
	AlwaysOnTop            bool         `json:"always_on_top"`
	AutoQuit               *SessionType `json:"auto_quit"`
	AutoStartBreakTimer    bool         `json:"auto_start_break_timer"`
	AutoStartOnAppStartup  bool         `json:"auto_start_on_app_startup"`
	AutoStartWorkTimer     bool         `json:"auto_start_work_timer"`
	DefaultFocusLabel      string       `json:"default_focus_label"`
	DefaultLongBreakLabel  string       `json:"default_long_break_label"`
	DefaultShortBreakLabel string       `json:"default_short_break_label"`
	DesktopNotifications   bool         `json:"desktop_notifications"`
	FocusAudio             *string      `json:"focus_audio"`
	FocusDuration          int          `json:"focus_duration"`
	LongBreakAudio         *string      `json:"long_break_audio"`
	LongBreakDuration      int          `json:"long_break_duration"`
	MaxRoundNumber         int          `json:"max_round_number"`
	MaxSessionDuration     int          `json:"max_session_duration"`
	MinimizeToTray         bool         `json:"minimize_to_tray"`
	MinimizeToTrayOnClose  bool         `json:"minimize_to_tray_on_close"`
	Muted                  bool         `json:"muted"`
	SessionFile            string       `json:"session_file"`
	ShortBreakAudio        *string      `json:"short_break_audio"`
	ShortBreakDuration     int          `json:"short_break_duration"`
	StartMinimized         bool         `json:"start_minimized"`
	SystemStartupAutoStart bool         `json:"system_startup_auto_start"`
	Theme                  string       `json:"theme"`
	TickSoundsDuringWork   bool         `json:"tick_sounds_during_work"`
	TickSoundsDuringBreak  bool         `json:"tick_sounds_during_break"`
}

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "pomotroid"

// Default returns the configuration written on first run.
func Default() Config {
	return Config{
		AlwaysOnTop:            true,
		AutoStartBreakTimer:    true,
		AutoStartWorkTimer:     true,
		DefaultFocusLabel:      "Focus",
		DefaultLongBreakLabel:  "Long break",
		DefaultShortBreakLabel: "Short break",
		DesktopNotifications:   true,
		FocusDuration:          25 * 60,
		LongBreakDuration:      20 * 60,
		MaxRoundNumber:         4,
		MaxSessionDuration:     90 * 60,
		MinimizeToTray:         true,
		MinimizeToTrayOnClose:  true,
		SessionFile:            defaultSessionFile(),
		ShortBreakDuration:     5 * 60,
		Theme:                  DefaultTheme,
		TickSoundsDuringWork:   true,
		TickSoundsDuringBreak:  true,
	}
}

func defaultSessionFile() string {
	return filepath.Join(xdg.CacheHome, appName+"_session")
}

// DurationOf returns the configured length in seconds of a session type.
func (c *Config) DurationOf(t SessionType) int {
	switch t {
	case SessionShortBreak:
		return c.ShortBreakDuration
	case SessionLongBreak:
		return c.LongBreakDuration
	default:
		return c.FocusDuration
	}
}

// LabelOf returns the default label of a session type.
func (c *Config) LabelOf(t SessionType) string {
	switch t {
	case SessionShortBreak:
		return c.DefaultShortBreakLabel
	case SessionLongBreak:
		return c.DefaultLongBreakLabel
	default:
		return c.DefaultFocusLabel
	}
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks the numeric ranges the timer relies on.
func (c *Config) Validate() error {
	durations := map[string]int{
		"focus_duration":       c.FocusDuration,
		"short_break_duration": c.ShortBreakDuration,
		"long_break_duration":  c.LongBreakDuration,
		"max_session_duration": c.MaxSessionDuration,
		"max_round_number":     c.MaxRoundNumber,
	}
	for name, v := range durations {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInvalid, name, v)
		}
	}
	if c.AutoQuit != nil && !c.AutoQuit.Valid() {
		return fmt.Errorf("%w: unknown auto_quit session type %q", ErrInvalid, *c.AutoQuit)
	}
	return nil
}

// SetConfigField updates a single field in the config file using JSON path notation.
// Only the specified field is modified; the rest of the file is left untouched.
func SetConfigField(path, key string, value any) error {
	//nolint:gosec // G304: path comes from ConfigPath or a test directory.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	newData, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("setting config field %q: %w", key, err)
	}

	//nolint:gosec // 0o600 is intentionally restrictive.
	if err := os.WriteFile(path, []byte(newData), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
