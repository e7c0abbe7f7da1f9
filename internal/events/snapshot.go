package events

import (
	"time"

	"github.com/guilhermegouw/pomo/internal/config"
)

// InitSnapshotEvent carries the full configuration, themes and timer state.
// The host pushes it when its configuration is reloaded from disk.
type InitSnapshotEvent struct {
	Config    config.Config
	Themes    []config.Theme
	State     PomodoroState
	Timestamp time.Time
}

// NewInitSnapshotEvent creates an init snapshot event.
func NewInitSnapshotEvent(cfg config.Config, themes []config.Theme, state PomodoroState) InitSnapshotEvent {
	return InitSnapshotEvent{
		Config:    cfg,
		Themes:    themes,
		State:     state,
		Timestamp: time.Now(),
	}
}
