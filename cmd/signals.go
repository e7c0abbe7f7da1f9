package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/guilhermegouw/pomo/internal/debug"
	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/host"
	"github.com/guilhermegouw/pomo/internal/pubsub"
)

// reloadOnHangup re-reads configuration and themes on SIGHUP.
func reloadOnHangup(ctx context.Context, local *host.Local) {
	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hangup:
			if err := local.Reload(ctx); err != nil {
				debug.Error(component, err, "reloading on SIGHUP")
			}
		}
	}
}

// controlOnSignal turns the toggle and skip signals into the matching hub
// events until ctx is done. The signals are registered before it returns.
func controlOnSignal(ctx context.Context, hub *pubsub.Hub) {
	if toggleSignal == nil || skipSignal == nil {
		return
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, toggleSignal, skipSignal)

	go func() {
		defer signal.Stop(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-signals:
				if err := publishControl(ctx, hub, sig); err != nil {
					debug.Error(component, err, "publishing "+sig.String())
				}
			}
		}
	}()
}

func publishControl(ctx context.Context, hub *pubsub.Hub, sig os.Signal) error {
	debug.Event(component, "signal", sig.String())
	switch sig {
	case toggleSignal:
		return hub.TogglePlay.PublishContext(ctx, pubsub.EventPushed, events.NewTogglePlayEvent(events.SourceSignal))
	case skipSignal:
		return hub.Skip.PublishContext(ctx, pubsub.EventPushed, events.NewSkipEvent(events.SourceSignal))
	default:
		return nil
	}
}
