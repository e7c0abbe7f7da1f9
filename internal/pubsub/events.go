// Package pubsub provides a type-safe pub/sub broker implementation.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event.
type EventType string

// Event types carried across the bridge.
const (
	// EventCommand marks an outbound command published by the UI.
	EventCommand EventType = "command"
	// EventPushed marks a host-originated push (tick, control signal, state).
	EventPushed EventType = "pushed"
	// EventReloaded marks a full snapshot after the host reloaded its config.
	EventReloaded EventType = "reloaded"
)

// Event represents a typed event with metadata.
type Event[T any] struct { //nolint:govet // fieldalignment: preserving logical field order
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Publisher is the interface for publishing events.
type Publisher[T any] interface {
	Publish(EventType, T)
	PublishContext(context.Context, EventType, T) error
}

// Subscriber is the interface for subscribing to events.
type Subscriber[T any] interface {
	Subscribe(context.Context) <-chan Event[T]
}

// PubSub combines Publisher and Subscriber interfaces.
type PubSub[T any] interface {
	Publisher[T]
	Subscriber[T]
}
