// Package protocol defines the commands the UI runtime emits on its outbound
// channel and their wire envelope.
//
// Command is a closed sum type: every known command name has its own struct,
// and anything else decodes to Unrecognized so nothing is silently lost.
package protocol

import (
	"github.com/guilhermegouw/pomo/internal/colorcodec"
	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/schema"
)

// Name identifies a command on the wire.
type Name string

// Known command names.
const (
	NamePlaySound             Name = "play-sound"
	NameHideWindow            Name = "hide-window"
	NameMinimizeWindow        Name = "minimize-window"
	NameCloseWindow           Name = "close-window"
	NameNotify                Name = "notify"
	NameUpdateConfig          Name = "update-config"
	NameUpdateSessionStatus   Name = "update-session-status"
	NameUpdateCurrentState    Name = "update-current-state"
	NameChooseSoundFile       Name = "choose-sound-file"
	NameGetInitData           Name = "get-init-data"
	NameHandleExternalMessage Name = "handle-external-message"
	NameQuit                  Name = "quit"
)

// Names lists every known command name in declaration order.
var Names = []Name{
	NamePlaySound,
	NameHideWindow,
	NameMinimizeWindow,
	NameCloseWindow,
	NameNotify,
	NameUpdateConfig,
	NameUpdateSessionStatus,
	NameUpdateCurrentState,
	NameChooseSoundFile,
	NameGetInitData,
	NameHandleExternalMessage,
	NameQuit,
}

// Known reports whether n is one of the declared command names.
func (n Name) Known() bool {
	for _, known := range Names {
		if n == known {
			return true
		}
	}
	return false
}

// Command is a single UI request. The set of implementations is closed.
type Command interface {
	CommandName() Name
	isCommand()
}

// SoundID names one of the built-in sounds.
type SoundID string

// Built-in sounds.
const (
	SoundWork       SoundID = "audio-work"
	SoundShortBreak SoundID = "audio-short-break"
	SoundLongBreak  SoundID = "audio-long-break"
	SoundTick       SoundID = "audio-tick"
)

// Valid reports whether id names a built-in sound.
func (id SoundID) Valid() bool {
	switch id {
	case SoundWork, SoundShortBreak, SoundLongBreak, SoundTick:
		return true
	}
	return false
}

// Notification is a desktop notification request.
// Red, Green and Blue tint the notification icon.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Name  string `json:"name"`
	Red   uint8  `json:"red"`
	Green uint8  `json:"green"`
	Blue  uint8  `json:"blue"`
}

// ExternalAction is a timer control requested from outside the UI.
type ExternalAction string

// Timer controls.
const (
	ActionPlay  ExternalAction = "play"
	ActionPause ExternalAction = "pause"
	ActionReset ExternalAction = "reset"
	ActionSkip  ExternalAction = "skip"
)

// Valid reports whether a is a known timer control.
func (a ExternalAction) Valid() bool {
	switch a {
	case ActionPlay, ActionPause, ActionReset, ActionSkip:
		return true
	}
	return false
}

// PlaySound asks the host to play a built-in sound.
type PlaySound struct {
	Sound SoundID `json:"sound"`
}

// HideWindow asks the host to hide the window.
type HideWindow struct{}

// MinimizeWindow asks the host to minimize the window.
type MinimizeWindow struct{}

// CloseWindow asks the host to close the window.
type CloseWindow struct{}

// Notify asks the host to show a desktop notification.
type Notify struct {
	Notification Notification
}

// UpdateConfig replaces the persisted configuration.
type UpdateConfig struct {
	Settings schema.Settings
}

// UpdateSessionStatus tells the host the session's run state changed.
type UpdateSessionStatus struct {
	Status schema.Status `json:"status"`
}

// UpdateCurrentState updates the tray icon. Color is a hex string; an
// unparseable value leaves the icon colour unchanged.
type UpdateCurrentState struct {
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
	Paused     bool    `json:"paused"`
}

// IconState is the tray icon update derived from UpdateCurrentState.
// A nil Color means the icon keeps its current colour.
type IconState struct {
	Color      *colorcodec.RGB
	Percentage float64
	Paused     bool
}

// Icon decodes the colour and returns the icon update.
func (c UpdateCurrentState) Icon() IconState {
	return IconState{
		Color:      colorcodec.ParseOptional(c.Color),
		Percentage: c.Percentage,
		Paused:     c.Paused,
	}
}

// ChooseSoundFile asks the host to pick a custom sound for a slot.
type ChooseSoundFile struct {
	Sound SoundID `json:"sound"`
}

// GetInitData asks for the settings, themes and timer state.
type GetInitData struct{}

// HandleExternalMessage forwards a timer control to the host.
type HandleExternalMessage struct {
	Action ExternalAction `json:"name"`
}

// Quit asks the host to exit.
type Quit struct{}

// Unrecognized carries a command whose name is not known.
type Unrecognized struct {
	Envelope Envelope
}

func (PlaySound) CommandName() Name             { return NamePlaySound }
func (HideWindow) CommandName() Name            { return NameHideWindow }
func (MinimizeWindow) CommandName() Name        { return NameMinimizeWindow }
func (CloseWindow) CommandName() Name           { return NameCloseWindow }
func (Notify) CommandName() Name                { return NameNotify }
func (UpdateConfig) CommandName() Name          { return NameUpdateConfig }
func (UpdateSessionStatus) CommandName() Name   { return NameUpdateSessionStatus }
func (UpdateCurrentState) CommandName() Name    { return NameUpdateCurrentState }
func (ChooseSoundFile) CommandName() Name       { return NameChooseSoundFile }
func (GetInitData) CommandName() Name           { return NameGetInitData }
func (HandleExternalMessage) CommandName() Name { return NameHandleExternalMessage }
func (Quit) CommandName() Name                  { return NameQuit }
func (u Unrecognized) CommandName() Name        { return u.Envelope.Name }

func (PlaySound) isCommand()             {}
func (HideWindow) isCommand()            {}
func (MinimizeWindow) isCommand()        {}
func (CloseWindow) isCommand()           {}
func (Notify) isCommand()                {}
func (UpdateConfig) isCommand()          {}
func (UpdateSessionStatus) isCommand()   {}
func (UpdateCurrentState) isCommand()    {}
func (ChooseSoundFile) isCommand()       {}
func (GetInitData) isCommand()           {}
func (HandleExternalMessage) isCommand() {}
func (Quit) isCommand()                  {}
func (Unrecognized) isCommand()          {}

// HostStatus converts the UI status carried by UpdateSessionStatus.
func (c UpdateSessionStatus) HostStatus() events.SessionStatus {
	return schema.StatusToHost(c.Status)
}
