package events

import (
	"time"

	"github.com/guilhermegouw/pomo/internal/config"
)

// SessionStatus represents the run state of the current session.
type SessionStatus string

// Session status constants.
const (
	StatusNotStarted SessionStatus = "not_started"
	StatusPaused     SessionStatus = "paused"
	StatusRunning    SessionStatus = "running"
)

// SessionState is the host's view of the current session.
type SessionState struct { //nolint:govet // fieldalignment: preserving logical field order
	CurrentTime int                `json:"current_time"`
	Label       *string            `json:"label"`
	SessionType config.SessionType `json:"session_type"`
	Status      SessionStatus      `json:"status"`
}

// PomodoroState is the timer snapshot the host pushes to the UI.
type PomodoroState struct {
	CurrentSession         SessionState `json:"current_session"`
	CurrentWorkRoundNumber int          `json:"current_work_round_number"`
}

// NewPomodoroState returns the state of a timer that has not started yet.
func NewPomodoroState() PomodoroState {
	return PomodoroState{
		CurrentSession: SessionState{
			SessionType: config.SessionFocus,
			Status:      StatusNotStarted,
		},
		CurrentWorkRoundNumber: 1,
	}
}

// ExternalMessageEvent carries a state change that did not originate in the UI.
type ExternalMessageEvent struct {
	State     PomodoroState
	Timestamp time.Time
}

// NewExternalMessageEvent creates an external message event.
func NewExternalMessageEvent(state PomodoroState) ExternalMessageEvent {
	return ExternalMessageEvent{
		State:     state,
		Timestamp: time.Now(),
	}
}
