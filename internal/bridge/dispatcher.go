package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/guilhermegouw/pomo/internal/debug"
	"github.com/guilhermegouw/pomo/internal/host"
	"github.com/guilhermegouw/pomo/internal/journal"
	"github.com/guilhermegouw/pomo/internal/protocol"
	"github.com/guilhermegouw/pomo/internal/pubsub"
	"github.com/guilhermegouw/pomo/internal/schema"
)

// ErrUnknownCommand is returned for a Command variant the dispatcher has no
// case for.
var ErrUnknownCommand = errors.New("no handler for command")

// Dispatcher routes commands to the host and replies to the UI.
type Dispatcher struct { //nolint:govet // fieldalignment: preserving logical field order
	host    host.Host
	sender  Sender
	journal journal.Store

	sequential  bool
	callTimeout time.Duration
	newID       func() uuid.UUID

	wg sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSequential dispatches one command at a time, in arrival order.
func WithSequential() DispatcherOption {
	return func(d *Dispatcher) {
		d.sequential = true
	}
}

// WithCallTimeout bounds each host call. Zero means no timeout.
func WithCallTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.callTimeout = timeout
	}
}

// WithJournal records failures and audited commands in store.
func WithJournal(store journal.Store) DispatcherOption {
	return func(d *Dispatcher) {
		d.journal = store
	}
}

// NewDispatcher creates a dispatcher that calls h and replies to sender.
func NewDispatcher(h host.Host, sender Sender, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		host:   h,
		sender: sender,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run dispatches every command received on commands until the channel is
// closed or ctx is done. Unless WithSequential is set each command runs in
// its own goroutine, so replies may arrive in any order.
func (d *Dispatcher) Run(ctx context.Context, commands <-chan pubsub.Event[protocol.Command]) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-commands:
			if !ok {
				return
			}
			if event.Payload == nil {
				continue
			}
			if d.sequential {
				d.Dispatch(ctx, event.Payload)
				continue
			}
			d.Go(ctx, event.Payload)
		}
	}
}

// Go dispatches cmd in a new goroutine.
func (d *Dispatcher) Go(ctx context.Context, cmd protocol.Command) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.Dispatch(ctx, cmd)
	}()
}

// Wait blocks until every dispatch started with Go has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Dispatch issues exactly one host call for cmd and sends at most one reply.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd protocol.Command) {
	name := cmd.CommandName()
	id := d.newID()

	callCtx := ctx
	if d.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.callTimeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := d.call(callCtx, cmd)
	elapsed := time.Since(start)

	if err != nil {
		debug.Error("dispatcher", err, string(name))
		d.record(ctx, cmd, journal.OutcomeFailed, err, elapsed)
		if PolicyFor(name) == PolicyPropagate {
			d.send(ReplyMsg{ID: id, Command: name, Payload: CommandFailedMsg{Command: name, Err: err}})
		}
		return
	}

	switch {
	case isUnrecognized(cmd):
		d.record(ctx, cmd, journal.OutcomeUnhandled, nil, elapsed)
	case audited(name):
		d.record(ctx, cmd, journal.OutcomeOK, nil, elapsed)
	}

	debug.Event("dispatcher", string(name), fmt.Sprintf("ok in %s", elapsed))
	if reply != nil {
		d.send(ReplyMsg{ID: id, Command: name, Payload: reply})
	}
}

// call resolves the handler for cmd. A nil message means no reply.
func (d *Dispatcher) call(ctx context.Context, cmd protocol.Command) (msg tea.Msg, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg, err = nil, fmt.Errorf("host panicked: %v", r)
		}
	}()

	switch c := cmd.(type) {
	case protocol.PlaySound:
		return nil, d.host.PlaySound(ctx, c.Sound)
	case protocol.HideWindow:
		return nil, d.host.HideWindow(ctx)
	case protocol.MinimizeWindow:
		return nil, d.host.MinimizeWindow(ctx)
	case protocol.CloseWindow:
		return nil, d.host.CloseWindow(ctx)
	case protocol.Notify:
		return nil, d.host.Notify(ctx, c.Notification)
	case protocol.UpdateConfig:
		state, err := d.host.UpdateConfig(ctx, schema.ToHost(c.Settings))
		if err != nil {
			return nil, err
		}
		return StateMsg{State: schema.StateToUI(state)}, nil
	case protocol.UpdateSessionStatus:
		return nil, d.host.UpdateSessionStatus(ctx, c.HostStatus())
	case protocol.UpdateCurrentState:
		return nil, d.host.ChangeIcon(ctx, c.Icon())
	case protocol.ChooseSoundFile:
		path, err := d.host.ChooseSoundFile(ctx, c.Sound)
		if err != nil {
			return nil, err
		}
		return SoundFileChosenMsg{Sound: c.Sound, Path: path}, nil
	case protocol.GetInitData:
		data, err := d.host.LoadInitData(ctx)
		if err != nil {
			return nil, err
		}
		return InitDataMsg{
			Settings: schema.ToUI(data.Config),
			Themes:   schema.ThemesToUI(data.Themes),
			State:    schema.StateToUI(data.State),
		}, nil
	case protocol.HandleExternalMessage:
		state, err := d.host.HandleExternalMessage(ctx, c.Action)
		if err != nil {
			return nil, err
		}
		return StateMsg{State: schema.StateToUI(state)}, nil
	case protocol.Quit:
		return nil, d.host.Quit(ctx)
	case protocol.Unrecognized:
		raw, err := d.host.Unhandled(ctx, c.Envelope)
		if err != nil || raw == nil {
			return nil, err
		}
		return UnhandledReplyMsg{Name: c.Envelope.Name, Payload: raw}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

func (d *Dispatcher) send(msg ReplyMsg) {
	if d.sender == nil {
		return
	}
	d.sender.Send(msg)
}

// record journals a dispatch. The journal write outlives a cancelled call.
func (d *Dispatcher) record(ctx context.Context, cmd protocol.Command, outcome journal.Outcome, err error, elapsed time.Duration) {
	if d.journal == nil {
		return
	}

	entry := journal.Entry{
		Command:  string(cmd.CommandName()),
		Outcome:  outcome,
		Duration: elapsed,
	}
	if env, encErr := protocol.Encode(cmd); encErr == nil {
		entry.Payload = string(env.Payload)
	}
	if err != nil {
		entry.Error = err.Error()
	}

	if _, recErr := d.journal.Record(context.WithoutCancel(ctx), entry); recErr != nil {
		debug.Error("dispatcher", recErr, "journal record")
	}
}

func isUnrecognized(cmd protocol.Command) bool {
	_, ok := cmd.(protocol.Unrecognized)
	return ok
}
