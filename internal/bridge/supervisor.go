package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/debug"
	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/host"
	"github.com/guilhermegouw/pomo/internal/pubsub"
	"github.com/guilhermegouw/pomo/internal/schema"
)

// UnknownVersion is reported when the version cannot be resolved.
const UnknownVersion = "unknown"

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("bridge already started")

// Flags is the immutable snapshot the UI is constructed with.
type Flags struct { //nolint:govet // fieldalignment: preserving logical field order
	Settings schema.Settings
	Themes   []schema.Theme
	State    schema.State
	Version  string
	DevMode  bool
}

// Environment describes the running application.
type Environment struct {
	// Version reports the application version. Nil, an error or an empty
	// result resolve to UnknownVersion.
	Version func(ctx context.Context) (string, error)
	DevMode bool
}

// UIFactory constructs the UI from its flags and returns its inbound surface.
// It must not start dispatching commands before returning.
type UIFactory func(Flags) (Sender, error)

// Supervisor owns startup order: snapshot, environment, UI, dispatcher,
// relay. Stop tears them down in reverse.
type Supervisor struct { //nolint:govet // fieldalignment: preserving logical field order
	hub     *pubsub.Hub
	host    host.Host
	factory UIFactory
	env     Environment
	opts    []DispatcherOption

	mu         sync.Mutex
	started    bool
	stopped    bool
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	dispatcher *Dispatcher
	relay      *Relay
}

// SupervisorOption configures a Supervisor.
type SupervisorOption func(*Supervisor)

// WithEnvironment sets the environment metadata.
func WithEnvironment(env Environment) SupervisorOption {
	return func(s *Supervisor) {
		s.env = env
	}
}

// WithDispatcherOptions passes options to the dispatcher created by Start.
func WithDispatcherOptions(opts ...DispatcherOption) SupervisorOption {
	return func(s *Supervisor) {
		s.opts = append(s.opts, opts...)
	}
}

// NewSupervisor creates a supervisor. Nothing runs until Start.
func NewSupervisor(hub *pubsub.Hub, h host.Host, factory UIFactory, opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		hub:     hub,
		host:    h,
		factory: factory,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the UI and wires it to the host. The dispatcher and relay
// run until ctx is done or Stop is called.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	if s.env.DevMode {
		if err := schema.CheckSync(); err != nil {
			return fmt.Errorf("settings schema out of sync: %w", err)
		}
	}

	data := s.initialData(ctx)
	flags := Flags{
		Settings: schema.ToUI(data.Config),
		Themes:   schema.ThemesToUI(data.Themes),
		State:    schema.StateToUI(data.State),
		Version:  s.version(ctx),
		DevMode:  s.env.DevMode,
	}

	sender, err := s.factory(flags)
	if err != nil {
		return fmt.Errorf("creating UI: %w", err)
	}
	if sender == nil {
		return errors.New("creating UI: factory returned no sender")
	}

	runCtx, cancel := context.WithCancel(ctx)
	commands := s.hub.Outbound.Subscribe(runCtx)
	dispatcher := NewDispatcher(s.host, sender, s.opts...)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		dispatcher.Run(runCtx, commands)
	}()

	relay := NewRelay(s.hub, sender)
	relay.Start(runCtx)

	s.started = true
	s.cancel = cancel
	s.dispatcher = dispatcher
	s.relay = relay

	debug.Event("supervisor", "start", "version "+flags.Version)
	return nil
}

// Stop stops the relay, drains the dispatcher and shuts the hub down. It is
// safe to call more than once.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.stopped {
		return
	}
	s.stopped = true

	s.relay.Stop()
	s.cancel()
	s.wg.Wait()
	s.dispatcher.Wait()
	s.hub.Shutdown()

	debug.Event("supervisor", "stop", "bridge stopped")
	if debug.IsEnabled() {
		for _, line := range strings.Split(strings.TrimSpace(s.hub.DebugString()), "\n") {
			debug.Event("supervisor", "broker", line)
		}
	}
}

func (s *Supervisor) initialData(ctx context.Context) host.InitData {
	data, err := s.host.LoadInitData(ctx)
	if err == nil {
		return data
	}

	debug.Error("supervisor", err, "loading init data, using defaults")
	themes, _ := config.LoadThemes()
	return host.InitData{
		Config: config.Default(),
		Themes: themes,
		State:  events.NewPomodoroState(),
	}
}

func (s *Supervisor) version(ctx context.Context) string {
	if s.env.Version == nil {
		return UnknownVersion
	}
	v, err := s.env.Version(ctx)
	if err != nil {
		debug.Error("supervisor", err, "resolving version")
		return UnknownVersion
	}
	if v = strings.TrimSpace(v); v == "" {
		return UnknownVersion
	}
	return v
}
