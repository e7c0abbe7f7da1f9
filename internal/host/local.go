package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/debug"
	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/protocol"
	"github.com/guilhermegouw/pomo/internal/pubsub"
)

const component = "host"

// ErrNoCustomSound is returned when choosing a file for a slot that only has
// a built-in sound.
var ErrNoCustomSound = errors.New("sound has no custom file setting")

// Local is the terminal host: configuration on disk, a session clock,
// audio through beep and notifications through terminal escapes.
type Local struct { //nolint:govet // fieldalignment: preserving logical field order
	mu         sync.Mutex
	configPath string
	cfg        config.Config
	themes     []config.Theme
	icon       protocol.IconState

	hub      *pubsub.Hub
	clock    *Clock
	player   Player
	picker   Picker
	notifier Notifier
	quit     context.CancelFunc
}

// Option configures a Local host.
type Option func(*Local)

// WithPlayer sets the sound player.
func WithPlayer(p Player) Option {
	return func(l *Local) { l.player = p }
}

// WithPicker sets the sound file picker.
func WithPicker(p Picker) Option {
	return func(l *Local) { l.picker = p }
}

// WithNotifier sets where notifications and icon updates go.
func WithNotifier(n Notifier) Option {
	return func(l *Local) { l.notifier = n }
}

// WithQuit sets the function Quit calls to end the application.
func WithQuit(cancel context.CancelFunc) Option {
	return func(l *Local) { l.quit = cancel }
}

// NewLocal loads the configuration at configPath (creating it if needed)
// and the themes next to it.
func NewLocal(hub *pubsub.Hub, configPath string, opts ...Option) (*Local, error) {
	l := &Local{
		configPath: configPath,
		hub:        hub,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.player == nil {
		l.player = NewBeepPlayer()
	}
	if l.picker == nil {
		l.picker = DirPicker{Dir: filepath.Join(filepath.Dir(configPath), "sounds")}
	}

	cfg, themes, err := l.read()
	if err != nil {
		return nil, err
	}
	l.cfg = cfg
	l.themes = themes
	l.clock = NewClock(cfg, hub)
	l.clock.OnComplete(l.autoQuit)

	return l, nil
}

// Clock returns the session clock.
func (l *Local) Clock() *Clock {
	return l.clock
}

// Run drives the session clock until ctx is done.
func (l *Local) Run(ctx context.Context) {
	l.clock.Run(ctx, time.Second)
}

// Config returns the current configuration.
func (l *Local) Config() config.Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

// Icon returns the last icon state applied.
func (l *Local) Icon() protocol.IconState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.icon
}

func (l *Local) read() (config.Config, []config.Theme, error) {
	cfg, err := config.LoadOrCreate(l.configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}
	themes, errs := config.LoadThemes(filepath.Join(filepath.Dir(l.configPath), "themes"))
	for _, err := range errs {
		debug.Error(component, err, "loading theme")
	}
	return *cfg, themes, nil
}

// Reload re-reads configuration and themes from disk and pushes a fresh
// snapshot to the UI.
func (l *Local) Reload(ctx context.Context) error {
	cfg, themes, err := l.read()
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.cfg = cfg
	l.themes = themes
	l.mu.Unlock()
	l.clock.SetConfig(cfg)

	debug.Event(component, "reload", fmt.Sprintf("%d themes", len(themes)))
	if l.hub == nil {
		return nil
	}
	return l.hub.Snapshot.PublishContext(ctx, pubsub.EventReloaded,
		events.NewInitSnapshotEvent(cfg, themes, l.clock.State()))
}

// HideWindow has no terminal equivalent.
func (l *Local) HideWindow(_ context.Context) error {
	debug.Event(component, "hide-window", "ignored in terminal")
	return nil
}

// MinimizeWindow has no terminal equivalent.
func (l *Local) MinimizeWindow(_ context.Context) error {
	debug.Event(component, "minimize-window", "ignored in terminal")
	return nil
}

// CloseWindow quits unless the configuration keeps the app in the tray.
func (l *Local) CloseWindow(ctx context.Context) error {
	if l.Config().MinimizeToTrayOnClose {
		debug.Event(component, "close-window", "minimize to tray on close")
		return nil
	}
	return l.Quit(ctx)
}

// PlaySound plays the configured sound for id, or nothing when muted.
func (l *Local) PlaySound(ctx context.Context, id protocol.SoundID) error {
	cfg := l.Config()
	if cfg.Muted {
		return nil
	}

	var path string
	if p := customSound(&cfg, id); p != nil && *p != nil {
		path = **p
	}
	if err := l.player.Play(ctx, id, path); err != nil {
		return fmt.Errorf("playing %s: %w", id, err)
	}
	return nil
}

// Notify shows a notification when desktop notifications are enabled.
func (l *Local) Notify(_ context.Context, n protocol.Notification) error {
	if !l.Config().DesktopNotifications {
		debug.Event(component, "notify", "disabled: "+n.Title)
		return nil
	}
	if l.notifier == nil {
		debug.Event(component, "notify", n.Title+": "+n.Body)
		return nil
	}
	return l.notifier.Notify(n)
}

// LoadInitData returns the current configuration, themes and timer state.
func (l *Local) LoadInitData(_ context.Context) (InitData, error) {
	l.mu.Lock()
	cfg, themes := l.cfg, l.themes
	l.mu.Unlock()

	return InitData{
		Config: cfg,
		Themes: themes,
		State:  l.clock.State(),
	}, nil
}

// UpdateConfig validates and persists cfg.
func (l *Local) UpdateConfig(_ context.Context, cfg config.Config) (events.PomodoroState, error) {
	if err := cfg.Validate(); err != nil {
		return events.PomodoroState{}, err
	}
	if err := config.SaveToFile(&cfg, l.configPath); err != nil {
		return events.PomodoroState{}, err
	}

	l.mu.Lock()
	l.cfg = cfg
	l.mu.Unlock()
	l.clock.SetConfig(cfg)

	return l.clock.State(), nil
}

// UpdateSessionStatus records the status the UI reports.
func (l *Local) UpdateSessionStatus(_ context.Context, status events.SessionStatus) error {
	l.clock.SetStatus(status)
	return nil
}

// ChangeIcon updates the icon. A nil colour keeps the previous one.
func (l *Local) ChangeIcon(_ context.Context, icon protocol.IconState) error {
	l.mu.Lock()
	if icon.Color == nil {
		icon.Color = l.icon.Color
	}
	l.icon = icon
	l.mu.Unlock()

	if l.notifier == nil {
		return nil
	}
	return l.notifier.SetIcon(icon)
}

// HandleExternalMessage applies a timer control and returns the new state.
func (l *Local) HandleExternalMessage(_ context.Context, action protocol.ExternalAction) (events.PomodoroState, error) {
	switch action {
	case protocol.ActionPlay:
		return l.clock.Play(), nil
	case protocol.ActionPause:
		return l.clock.Pause(), nil
	case protocol.ActionReset:
		return l.clock.Reset(), nil
	case protocol.ActionSkip:
		return l.clock.Skip(), nil
	default:
		return l.clock.State(), fmt.Errorf("unknown timer control %q", action)
	}
}

// ChooseSoundFile asks the picker for a file and stores it in the
// configuration. It returns nil when nothing was chosen.
func (l *Local) ChooseSoundFile(ctx context.Context, id protocol.SoundID) (*string, error) {
	key, ok := soundKeys[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCustomSound, id)
	}

	path, err := l.picker.Pick(ctx, id)
	if errors.Is(err, ErrNoSelection) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("choosing sound: %w", err)
	}

	if err := config.SetConfigField(l.configPath, key, path); err != nil {
		return nil, err
	}

	l.mu.Lock()
	if field := customSound(&l.cfg, id); field != nil {
		*field = &path
	}
	l.mu.Unlock()

	return &path, nil
}

// Quit ends the application.
func (l *Local) Quit(_ context.Context) error {
	if l.quit == nil {
		return errors.New("quit is not wired")
	}
	l.quit()
	return nil
}

// Unhandled logs unknown commands and returns no reply.
func (l *Local) Unhandled(_ context.Context, env protocol.Envelope) (json.RawMessage, error) {
	debug.Event(component, "unhandled", string(env.Name))
	return nil, nil
}

func (l *Local) autoQuit(finished config.SessionType) {
	cfg := l.Config()
	if cfg.AutoQuit == nil || *cfg.AutoQuit != finished {
		return
	}
	debug.Event(component, "auto-quit", string(finished))
	if err := l.Quit(context.Background()); err != nil {
		debug.Error(component, err, "auto-quit")
	}
}

// soundKeys maps sound slots to their config file keys.
var soundKeys = map[protocol.SoundID]string{
	protocol.SoundWork:       "focus_audio",
	protocol.SoundShortBreak: "short_break_audio",
	protocol.SoundLongBreak:  "long_break_audio",
}

// customSound returns the config field holding the custom file for id, or
// nil when the slot has none.
func customSound(cfg *config.Config, id protocol.SoundID) **string {
	switch id {
	case protocol.SoundWork:
		return &cfg.FocusAudio
	case protocol.SoundShortBreak:
		return &cfg.ShortBreakAudio
	case protocol.SoundLongBreak:
		return &cfg.LongBreakAudio
	default:
		return nil
	}
}

var _ Host = (*Local)(nil)
