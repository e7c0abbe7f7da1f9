package bridge

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/debug"
	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/protocol"
	"github.com/guilhermegouw/pomo/internal/pubsub"
)

// factoryRecorder is a UIFactory that records the flags it received and the
// order of calls relative to the host.
type factoryRecorder struct {
	mu      sync.Mutex
	flags   []Flags
	program *mockProgram
	err     error
	host    *fakeHost
	// hostCallsAtBuild is how many host calls had happened when the UI was built.
	hostCallsAtBuild int
}

func (f *factoryRecorder) build(flags Flags) (Sender, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flags = append(f.flags, flags)
	if f.host != nil {
		f.hostCallsAtBuild = len(f.host.Calls())
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.program, nil
}

func TestSupervisorStart(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the UI from the host snapshot", func(t *testing.T) {
		hub := pubsub.NewHub()
		h := newFakeHost()
		h.data.Config.FocusDuration = 1500
		h.data.Config.Theme = "dark"
		factory := &factoryRecorder{program: newMockProgram(), host: h}

		s := NewSupervisor(hub, h, factory.build, WithEnvironment(Environment{
			Version: func(context.Context) (string, error) { return "1.4.0", nil },
		}))
		if err := s.Start(ctx); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer s.Stop()

		if len(factory.flags) != 1 {
			t.Fatalf("factory called %d times, want 1", len(factory.flags))
		}
		flags := factory.flags[0]
		if flags.Settings.PomodoroDuration != 1500 || flags.Settings.Theme != "dark" {
			t.Errorf("flags settings = %+v", flags.Settings)
		}
		if flags.Version != "1.4.0" {
			t.Errorf("Version = %q, want 1.4.0", flags.Version)
		}
		if len(flags.Themes) == 0 {
			t.Error("flags carry no themes")
		}
		if factory.hostCallsAtBuild != 1 {
			t.Errorf("host calls before UI build = %d, want only LoadInitData", factory.hostCallsAtBuild)
		}
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		hub := pubsub.NewHub()
		h := newFakeHost()
		h.initErr = errors.New("config unreadable")
		factory := &factoryRecorder{program: newMockProgram()}

		s := NewSupervisor(hub, h, factory.build)
		if err := s.Start(ctx); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer s.Stop()

		flags := factory.flags[0]
		if flags.Settings.PomodoroDuration != config.Default().FocusDuration {
			t.Errorf("PomodoroDuration = %d, want default", flags.Settings.PomodoroDuration)
		}
		if flags.Version != UnknownVersion {
			t.Errorf("Version = %q, want %q", flags.Version, UnknownVersion)
		}
	})

	t.Run("start twice", func(t *testing.T) {
		hub := pubsub.NewHub()
		factory := &factoryRecorder{program: newMockProgram()}
		s := NewSupervisor(hub, newFakeHost(), factory.build)

		if err := s.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer s.Stop()

		if err := s.Start(ctx); !errors.Is(err, ErrAlreadyStarted) {
			t.Errorf("second Start() error = %v, want ErrAlreadyStarted", err)
		}
		if len(factory.flags) != 1 {
			t.Errorf("factory called %d times, want 1", len(factory.flags))
		}
	})

	t.Run("factory failure", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()
		factory := &factoryRecorder{err: errors.New("no terminal")}
		s := NewSupervisor(hub, newFakeHost(), factory.build)

		if err := s.Start(ctx); err == nil {
			t.Fatal("Start() should fail when the UI cannot be built")
		}
		if s.dispatcher != nil {
			t.Error("dispatcher started without a UI")
		}
		// A failed start can be retried.
		factory.err = nil
		factory.program = newMockProgram()
		if err := s.Start(ctx); err != nil {
			t.Errorf("retry Start() error = %v", err)
		}
		s.Stop()
	})

	t.Run("dev mode checks schema sync", func(t *testing.T) {
		hub := pubsub.NewHub()
		factory := &factoryRecorder{program: newMockProgram()}
		s := NewSupervisor(hub, newFakeHost(), factory.build, WithEnvironment(Environment{DevMode: true}))

		if err := s.Start(ctx); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer s.Stop()

		if !factory.flags[0].DevMode {
			t.Error("DevMode not passed to the UI")
		}
	})
}

func TestSupervisorVersion(t *testing.T) {
	tests := []struct {
		name    string
		version func(context.Context) (string, error)
		want    string
	}{
		{"nil", nil, UnknownVersion},
		{"error", func(context.Context) (string, error) { return "", errors.New("no runtime") }, UnknownVersion},
		{"blank", func(context.Context) (string, error) { return "  ", nil }, UnknownVersion},
		{"set", func(context.Context) (string, error) { return "v2.0.1\n", nil }, "v2.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSupervisor(nil, nil, nil, WithEnvironment(Environment{Version: tt.version}))
			if got := s.version(context.Background()); got != tt.want {
				t.Errorf("version() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSupervisorEndToEnd(t *testing.T) {
	hub := pubsub.NewHub()
	h := newFakeHost()
	program := newMockProgram()
	factory := &factoryRecorder{program: program}

	s := NewSupervisor(hub, h, factory.build, WithDispatcherOptions(WithSequential()))
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	// UI -> dispatcher -> host -> reply.
	hub.Outbound.Publish(pubsub.EventCommand, protocol.HandleExternalMessage{Action: protocol.ActionPlay})
	msgs := program.waitFor(t, 1)
	if reply, ok := msgs[0].(ReplyMsg); !ok || reply.Command != protocol.NameHandleExternalMessage {
		t.Fatalf("first message = %+v", msgs[0])
	}

	// Host -> relay -> UI.
	hub.Tick.Publish(pubsub.EventPushed, events.NewTickEvent())
	msgs = program.waitFor(t, 2)
	if _, ok := msgs[1].(TickMsg); !ok {
		t.Errorf("second message = %T, want TickMsg", msgs[1])
	}

	s.Stop()
	if !hub.IsShutdown() {
		t.Error("Stop() did not shut the hub down")
	}
	// Should be safe to stop again
	s.Stop()
}

func TestSupervisorStopLogsBrokers(t *testing.T) {
	var buf bytes.Buffer
	if err := debug.Enable(filepath.Join(t.TempDir(), "debug.log"), debug.WithMirror(&buf)); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(debug.Disable)

	factory := &factoryRecorder{program: newMockProgram()}
	s := NewSupervisor(pubsub.NewHub(), newFakeHost(), factory.build)
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.Stop()
	debug.Disable()

	out := buf.String()
	for _, name := range []string{"outbound", "tick", "toggle-play", "skip", "external", "snapshot"} {
		if !strings.Contains(out, "[supervisor] broker: "+name+": subs=") {
			t.Errorf("log missing %s broker line:\n%s", name, out)
		}
	}
}
