package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBufferSize is the default channel buffer for subscribers.
const DefaultBufferSize = 64

// BrokerOption configures a Broker.
type BrokerOption[T any] func(*Broker[T])

// WithBufferSize sets the subscriber channel buffer size.
func WithBufferSize[T any](size int) BrokerOption[T] {
	return func(b *Broker[T]) {
		b.bufferSize = size
	}
}

// WithDropPolicy sets whether to drop events when a subscriber is full.
// Bridge traffic uses false: every publish must reach every subscriber.
func WithDropPolicy[T any](drop bool) BrokerOption[T] {
	return func(b *Broker[T]) {
		b.dropOnFull = drop
	}
}

// subscription pairs a delivery channel with a done signal. The channel is
// only closed under the write lock, after done has released any publisher
// blocked on it.
type subscription[T any] struct {
	ch   chan Event[T]
	done chan struct{}
	once sync.Once
}

func (s *subscription[T]) cancel() {
	s.once.Do(func() { close(s.done) })
}

// Broker is a type-safe pub/sub broker using Go generics.
// It is thread-safe and supports context-based subscription lifecycle.
type Broker[T any] struct { //nolint:govet // fieldalignment: preserving logical field order
	name       string
	subs       map[*subscription[T]]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	doneOnce   sync.Once
	bufferSize int
	dropOnFull bool

	// Metrics (atomic for lock-free reads)
	publishCount   atomic.Int64
	deliverCount   atomic.Int64
	dropCount      atomic.Int64
	subscriberPeak atomic.Int32
	subscriberCurr atomic.Int32
}

// NewBroker creates a new typed broker with optional configuration.
func NewBroker[T any](name string, opts ...BrokerOption[T]) *Broker[T] {
	b := &Broker[T]{
		name:       name,
		subs:       make(map[*subscription[T]]struct{}),
		done:       make(chan struct{}),
		bufferSize: DefaultBufferSize,
		dropOnFull: true, // Default: non-blocking
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Name returns the broker's name for debugging.
func (b *Broker[T]) Name() string {
	return b.name
}

// Subscribe creates a new subscription that receives events until context is cancelled.
// The returned channel is closed when the context is done or the broker shuts down.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.IsShutdown() {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sub := &subscription[T]{
		ch:   make(chan Event[T], b.bufferSize),
		done: make(chan struct{}),
	}
	b.subs[sub] = struct{}{}

	curr := b.subscriberCurr.Add(1)
	for {
		peak := b.subscriberPeak.Load()
		if curr <= peak || b.subscriberPeak.CompareAndSwap(peak, curr) {
			break
		}
	}

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.remove(sub)
	}()

	return sub.ch
}

func (b *Broker[T]) remove(sub *subscription[T]) {
	// Release publishers blocked on this subscriber before taking the lock.
	sub.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
	b.subscriberCurr.Add(-1)
}

// Publish sends an event to all subscribers.
// With the drop policy (default) events are dropped for slow subscribers;
// without it Publish blocks until every subscriber has the event, the
// subscriber goes away, or the broker shuts down.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	_ = b.PublishContext(context.Background(), eventType, payload)
}

// PublishContext is Publish with a context bounding how long a blocking
// delivery may wait. It returns ctx.Err() if the context ended first.
func (b *Broker[T]) PublishContext(ctx context.Context, eventType EventType, payload T) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.IsShutdown() || len(b.subs) == 0 {
		return nil
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.publishCount.Add(1)

	for sub := range b.subs {
		if b.dropOnFull {
			select {
			case sub.ch <- event:
				b.deliverCount.Add(1)
			default:
				b.dropCount.Add(1)
			}
			continue
		}

		select {
		case sub.ch <- event:
			b.deliverCount.Add(1)
		case <-sub.done:
			b.dropCount.Add(1)
		case <-b.done:
			return nil
		case <-ctx.Done():
			b.dropCount.Add(1)
			return ctx.Err()
		}
	}
	return nil
}

// Shutdown gracefully shuts down the broker.
// All subscriber channels are closed and pending events are dropped.
func (b *Broker[T]) Shutdown() {
	b.doneOnce.Do(func() { close(b.done) })

	b.mu.RLock()
	subs := make([]*subscription[T], 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		b.remove(sub)
	}
}

// IsShutdown returns true if the broker has been shut down.
func (b *Broker[T]) IsShutdown() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker[T]) SubscriberCount() int {
	return int(b.subscriberCurr.Load())
}

// Metrics returns the broker's metrics for debugging.
func (b *Broker[T]) Metrics() BrokerMetrics {
	return BrokerMetrics{
		Name:            b.name,
		PublishCount:    b.publishCount.Load(),
		DeliverCount:    b.deliverCount.Load(),
		DropCount:       b.dropCount.Load(),
		SubscriberCount: int(b.subscriberCurr.Load()),
		SubscriberPeak:  int(b.subscriberPeak.Load()),
	}
}

// BrokerMetrics contains broker statistics for debugging.
type BrokerMetrics struct {
	Name            string
	PublishCount    int64
	DeliverCount    int64
	DropCount       int64
	SubscriberCount int
	SubscriberPeak  int
}
