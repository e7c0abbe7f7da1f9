package bridge

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/host"
	"github.com/guilhermegouw/pomo/internal/journal"
	"github.com/guilhermegouw/pomo/internal/protocol"
)

// mockProgram captures messages sent via Send().
type mockProgram struct {
	mu       sync.Mutex
	messages []tea.Msg
	notify   chan struct{}
}

func newMockProgram() *mockProgram {
	return &mockProgram{notify: make(chan struct{}, 256)}
}

func (m *mockProgram) Send(msg tea.Msg) {
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *mockProgram) Messages() []tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]tea.Msg, len(m.messages))
	copy(result, m.messages)
	return result
}

// waitFor blocks until at least n messages arrived.
func (m *mockProgram) waitFor(t *testing.T, n int) []tea.Msg {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if msgs := m.Messages(); len(msgs) >= n {
			return msgs
		}
		select {
		case <-m.notify:
		case <-deadline:
			t.Fatalf("timeout waiting for %d messages, got %d", n, len(m.Messages()))
		}
	}
}

// fakeHost records every call by command name.
type fakeHost struct {
	mu    sync.Mutex
	calls []protocol.Name
	args  []any

	err       error
	initErr   error
	data      host.InitData
	state     events.PomodoroState
	chosen    *string
	unhandled json.RawMessage

	// block, when set, holds play-sound calls until closed.
	block chan struct{}
}

func newFakeHost() *fakeHost {
	themes, _ := config.LoadThemes()
	return &fakeHost{
		data: host.InitData{
			Config: config.Default(),
			Themes: themes,
			State:  events.NewPomodoroState(),
		},
		state: events.NewPomodoroState(),
	}
}

func (f *fakeHost) record(name protocol.Name, arg any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
}

func (f *fakeHost) Calls() []protocol.Name {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]protocol.Name(nil), f.calls...)
}

func (f *fakeHost) LastArg() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.args) == 0 {
		return nil
	}
	return f.args[len(f.args)-1]
}

func (f *fakeHost) HideWindow(context.Context) error {
	f.record(protocol.NameHideWindow, nil)
	return f.err
}

func (f *fakeHost) MinimizeWindow(context.Context) error {
	f.record(protocol.NameMinimizeWindow, nil)
	return f.err
}

func (f *fakeHost) CloseWindow(context.Context) error {
	f.record(protocol.NameCloseWindow, nil)
	return f.err
}

func (f *fakeHost) PlaySound(ctx context.Context, id protocol.SoundID) error {
	f.record(protocol.NamePlaySound, id)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func (f *fakeHost) Notify(_ context.Context, n protocol.Notification) error {
	f.record(protocol.NameNotify, n)
	return f.err
}

func (f *fakeHost) LoadInitData(context.Context) (host.InitData, error) {
	f.record(protocol.NameGetInitData, nil)
	if f.initErr != nil {
		return host.InitData{}, f.initErr
	}
	return f.data, f.err
}

func (f *fakeHost) UpdateConfig(_ context.Context, cfg config.Config) (events.PomodoroState, error) {
	f.record(protocol.NameUpdateConfig, cfg)
	return f.state, f.err
}

func (f *fakeHost) UpdateSessionStatus(_ context.Context, status events.SessionStatus) error {
	f.record(protocol.NameUpdateSessionStatus, status)
	return f.err
}

func (f *fakeHost) ChangeIcon(_ context.Context, icon protocol.IconState) error {
	f.record(protocol.NameUpdateCurrentState, icon)
	return f.err
}

func (f *fakeHost) HandleExternalMessage(_ context.Context, action protocol.ExternalAction) (events.PomodoroState, error) {
	f.record(protocol.NameHandleExternalMessage, action)
	return f.state, f.err
}

func (f *fakeHost) ChooseSoundFile(_ context.Context, id protocol.SoundID) (*string, error) {
	f.record(protocol.NameChooseSoundFile, id)
	return f.chosen, f.err
}

func (f *fakeHost) Quit(context.Context) error {
	f.record(protocol.NameQuit, nil)
	return f.err
}

func (f *fakeHost) Unhandled(_ context.Context, env protocol.Envelope) (json.RawMessage, error) {
	f.record(env.Name, env)
	return f.unhandled, f.err
}

var _ host.Host = (*fakeHost)(nil)

// memJournal is an in-memory journal.Store.
type memJournal struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (m *memJournal) Record(_ context.Context, e journal.Entry) (journal.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *memJournal) Recent(_ context.Context, limit int) ([]journal.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := min(limit, len(m.entries))
	return append([]journal.Entry(nil), m.entries[len(m.entries)-n:]...), nil
}

func (m *memJournal) Failures(ctx context.Context, limit int) ([]journal.Entry, error) {
	all, _ := m.Recent(ctx, len(m.entries))
	var out []journal.Entry
	for _, e := range all {
		if e.Outcome != journal.OutcomeOK && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memJournal) Prune(context.Context, int) (int64, error) {
	return 0, nil
}

func (m *memJournal) Entries() []journal.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]journal.Entry(nil), m.entries...)
}
