package bridge

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/guilhermegouw/pomo/internal/debug"
	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/pubsub"
)

// Relay subscribes to every host-pushed event kind and forwards each event
// to the UI. Zero-payload kinds become sentinel messages; the others carry
// their payload unchanged.
type Relay struct { //nolint:govet // fieldalignment: preserving logical field order
	hub    *pubsub.Hub
	sender Sender

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRelay creates a relay from hub to sender.
func NewRelay(hub *pubsub.Hub, sender Sender) *Relay {
	return &Relay{
		hub:    hub,
		sender: sender,
	}
}

// Start subscribes to every kind before returning, so events published
// after Start are never missed. Call Stop to shut down.
func (r *Relay) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	forward(ctx, r, r.hub.Tick, func(events.TickEvent) tea.Msg {
		return TickMsg{}
	})
	forward(ctx, r, r.hub.TogglePlay, func(events.TogglePlayEvent) tea.Msg {
		return TogglePlayMsg{}
	})
	forward(ctx, r, r.hub.Skip, func(events.SkipEvent) tea.Msg {
		return SkipMsg{}
	})
	forward(ctx, r, r.hub.External, func(e events.ExternalMessageEvent) tea.Msg {
		return ExternalMessageMsg{Event: e}
	})
	forward(ctx, r, r.hub.Snapshot, func(e events.InitSnapshotEvent) tea.Msg {
		return InitSnapshotMsg{Event: e}
	})

	debug.Event("relay", "start", "event relay started")
}

// Stop cancels the subscriptions and waits for the forwarding goroutines.
func (r *Relay) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	debug.Event("relay", "stop", "event relay stopped")
}

func forward[T any](ctx context.Context, r *Relay, sub pubsub.Subscriber[T], toMsg func(T) tea.Msg) {
	events := sub.Subscribe(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				r.sender.Send(toMsg(event.Payload))
			}
		}
	}()
}
