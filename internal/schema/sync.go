package schema

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/guilhermegouw/pomo/internal/config"
)

// FieldPair names one settings field on both sides of the boundary.
type FieldPair struct {
	UI   string
	Host string
}

// SettingsFields is the declared correspondence used by ToHost and ToUI.
// Keep it in step with both records; CheckSync fails otherwise.
var SettingsFields = []FieldPair{
	{"alwaysOnTop", "always_on_top"},
	{"autoQuit", "auto_quit"},
	{"autoStartBreakTimer", "auto_start_break_timer"},
	{"autoStartOnAppStartup", "auto_start_on_app_startup"},
	{"autoStartWorkTimer", "auto_start_work_timer"},
	{"defaultFocusLabel", "default_focus_label"},
	{"defaultLongBreakLabel", "default_long_break_label"},
	{"defaultShortBreakLabel", "default_short_break_label"},
	{"desktopNotifications", "desktop_notifications"},
	{"focusAudio", "focus_audio"},
	{"pomodoroDuration", "focus_duration"},
	{"longBreakAudio", "long_break_audio"},
	{"longBreakDuration", "long_break_duration"},
	{"maxRoundNumber", "max_round_number"},
	{"maxSessionDuration", "max_session_duration"},
	{"minimizeToTray", "minimize_to_tray"},
	{"minimizeToTrayOnClose", "minimize_to_tray_on_close"},
	{"muted", "muted"},
	{"sessionFile", "session_file"},
	{"shortBreakAudio", "short_break_audio"},
	{"shortBreakDuration", "short_break_duration"},
	{"startMinimized", "start_minimized"},
	{"systemStartupAutoStart", "system_startup_auto_start"},
	{"theme", "theme"},
	{"tickSoundsDuringWork", "tick_sounds_during_work"},
	{"tickSoundsDuringBreak", "tick_sounds_during_break"},
}

// DriftError reports fields that exist on one side of the boundary without a
// declared counterpart on the other.
type DriftError struct {
	UnmappedUI   []string
	UnmappedHost []string
	StaleUI      []string
	StaleHost    []string
}

func (e *DriftError) Error() string {
	var parts []string
	add := func(label string, names []string) {
		if len(names) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", label, strings.Join(names, ", ")))
		}
	}
	add("UI fields without mapping", e.UnmappedUI)
	add("host fields without mapping", e.UnmappedHost)
	add("mapped UI fields missing", e.StaleUI)
	add("mapped host fields missing", e.StaleHost)
	return "settings schema drift: " + strings.Join(parts, "; ")
}

// CheckSync verifies that Settings and config.Config declare exactly the
// fields listed in SettingsFields. It returns a *DriftError otherwise.
func CheckSync() error {
	return checkPairs(SettingsFields, jsonFields(Settings{}), jsonFields(config.Config{}))
}

func checkPairs(pairs []FieldPair, ui, host []string) error {
	declaredUI := make([]string, 0, len(pairs))
	declaredHost := make([]string, 0, len(pairs))
	for _, p := range pairs {
		declaredUI = append(declaredUI, p.UI)
		declaredHost = append(declaredHost, p.Host)
	}

	drift := &DriftError{
		UnmappedUI:   missing(ui, declaredUI),
		UnmappedHost: missing(host, declaredHost),
		StaleUI:      missing(declaredUI, ui),
		StaleHost:    missing(declaredHost, host),
	}
	if len(drift.UnmappedUI)+len(drift.UnmappedHost)+len(drift.StaleUI)+len(drift.StaleHost) == 0 {
		return nil
	}
	return drift
}

// missing returns the names in have that are not in want, sorted.
func missing(have, want []string) []string {
	var out []string
	for _, name := range have {
		if !slices.Contains(want, name) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

func jsonFields(v any) []string {
	t := reflect.TypeOf(v)
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	return names
}
