// Package host defines the native operations the bridge dispatches to and a
// terminal reference implementation of them.
package host

import (
	"context"
	"encoding/json"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/protocol"
)

// InitData is everything the UI needs at startup.
type InitData struct {
	Config config.Config
	Themes []config.Theme
	State  events.PomodoroState
}

// Host is the native side of the bridge. Every method may block and may
// fail; the dispatcher decides what a failure means for the UI.
type Host interface {
	HideWindow(ctx context.Context) error
	MinimizeWindow(ctx context.Context) error
	CloseWindow(ctx context.Context) error
	PlaySound(ctx context.Context, id protocol.SoundID) error
	Notify(ctx context.Context, n protocol.Notification) error
	LoadInitData(ctx context.Context) (InitData, error)
	UpdateConfig(ctx context.Context, cfg config.Config) (events.PomodoroState, error)
	UpdateSessionStatus(ctx context.Context, status events.SessionStatus) error
	ChangeIcon(ctx context.Context, icon protocol.IconState) error
	HandleExternalMessage(ctx context.Context, action protocol.ExternalAction) (events.PomodoroState, error)
	// ChooseSoundFile returns the chosen path, or nil when nothing was chosen.
	ChooseSoundFile(ctx context.Context, id protocol.SoundID) (*string, error)
	Quit(ctx context.Context) error
	// Unhandled receives commands the bridge does not know. A non-nil
	// result is sent back to the UI.
	Unhandled(ctx context.Context, env protocol.Envelope) (json.RawMessage, error)
}
