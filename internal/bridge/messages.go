// Package bridge connects the UI runtime to the host: commands published by
// the UI are dispatched to the host, and host replies and pushed events are
// delivered back to the UI as Bubble Tea messages.
package bridge

import (
	"encoding/json"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/protocol"
	"github.com/guilhermegouw/pomo/internal/schema"
)

// Sender is the UI's inbound surface. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// ReplyMsg wraps every dispatcher reply. ID is assigned when the command is
// dispatched, so two replies of the same shape are never confused.
type ReplyMsg struct {
	ID      uuid.UUID
	Command protocol.Name
	Payload tea.Msg
}

// InitDataMsg answers get-init-data.
type InitDataMsg struct {
	Settings schema.Settings
	Themes   []schema.Theme
	State    schema.State
}

// StateMsg carries the timer state returned by update-config and
// handle-external-message.
type StateMsg struct {
	State schema.State
}

// SoundFileChosenMsg answers choose-sound-file. Path is nil when nothing was
// chosen.
type SoundFileChosenMsg struct {
	Sound protocol.SoundID
	Path  *string
}

// UnhandledReplyMsg carries whatever the host returned for an unrecognized
// command.
type UnhandledReplyMsg struct {
	Name    protocol.Name
	Payload json.RawMessage
}

// CommandFailedMsg reports a host failure for commands whose failures the UI
// must see.
type CommandFailedMsg struct { //nolint:govet // fieldalignment: preserving logical field order
	Command protocol.Name
	Err     error
}

// TickMsg is the per-second clock tick.
type TickMsg struct{}

// TogglePlayMsg asks the UI to toggle play and pause.
type TogglePlayMsg struct{}

// SkipMsg asks the UI to skip to the next session.
type SkipMsg struct{}

// ExternalMessageMsg carries a state change that did not originate in the UI.
type ExternalMessageMsg struct {
	Event events.ExternalMessageEvent
}

// InitSnapshotMsg carries a full snapshot pushed after the host reloaded.
type InitSnapshotMsg struct {
	Event events.InitSnapshotEvent
}
