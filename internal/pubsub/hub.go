package pubsub

import (
	"fmt"
	"strings"
	"sync"

	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/protocol"
)

// Hub is the central container for the bridge's brokers: one outbound
// channel from the UI and one inbound channel per host push.
type Hub struct { //nolint:govet // fieldalignment: preserving logical field order
	Outbound   *Broker[protocol.Command]
	Tick       *Broker[events.TickEvent]
	TogglePlay *Broker[events.TogglePlayEvent]
	Skip       *Broker[events.SkipEvent]
	External   *Broker[events.ExternalMessageEvent]
	Snapshot   *Broker[events.InitSnapshotEvent]

	done chan struct{}
	once sync.Once
}

// NewHub creates a new Hub with all brokers initialized.
// Every broker blocks rather than drops: the bridge must deliver each
// publish exactly once.
func NewHub() *Hub {
	return &Hub{
		Outbound:   NewBroker("outbound", WithDropPolicy[protocol.Command](false)),
		Tick:       NewBroker("tick", WithDropPolicy[events.TickEvent](false)),
		TogglePlay: NewBroker("toggle-play", WithDropPolicy[events.TogglePlayEvent](false)),
		Skip:       NewBroker("skip", WithDropPolicy[events.SkipEvent](false)),
		External:   NewBroker("external", WithDropPolicy[events.ExternalMessageEvent](false)),
		Snapshot:   NewBroker("snapshot", WithDropPolicy[events.InitSnapshotEvent](false)),
		done:       make(chan struct{}),
	}
}

type hubBroker interface {
	Name() string
	IsShutdown() bool
	Metrics() BrokerMetrics
	Shutdown()
}

// brokers lists the outbound broker first, then the inbound ones.
func (h *Hub) brokers() []hubBroker {
	return []hubBroker{h.Outbound, h.Tick, h.TogglePlay, h.Skip, h.External, h.Snapshot}
}

// Shutdown gracefully shuts down all brokers.
func (h *Hub) Shutdown() {
	h.once.Do(func() {
		close(h.done)

		brokers := h.brokers()
		var wg sync.WaitGroup
		wg.Add(len(brokers))
		for _, b := range brokers {
			go func() {
				defer wg.Done()
				b.Shutdown()
			}()
		}
		wg.Wait()
	})
}

// IsShutdown returns true if the hub has been shut down.
func (h *Hub) IsShutdown() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that's closed when the hub is shut down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// AllMetrics returns metrics for every broker, outbound first.
func (h *Hub) AllMetrics() []BrokerMetrics {
	brokers := h.brokers()
	metrics := make([]BrokerMetrics, 0, len(brokers))
	for _, b := range brokers {
		metrics = append(metrics, b.Metrics())
	}
	return metrics
}

// DebugString summarizes every broker on one line each.
func (h *Hub) DebugString() string {
	var sb strings.Builder
	for _, m := range h.AllMetrics() {
		fmt.Fprintf(&sb, "%s: subs=%d peak=%d published=%d delivered=%d dropped=%d\n",
			m.Name, m.SubscriberCount, m.SubscriberPeak, m.PublishCount, m.DeliverCount, m.DropCount)
	}
	return sb.String()
}
