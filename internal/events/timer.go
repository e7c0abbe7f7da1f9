package events

import "time"

// Source identifies where a control signal came from.
type Source string

// SourceSignal marks controls sent with SIGUSR1 and SIGUSR2.
const SourceSignal Source = "signal"

// TickEvent is pushed once per second while the host clock runs.
type TickEvent struct {
	Timestamp time.Time
}

// NewTickEvent creates a tick event.
func NewTickEvent() TickEvent {
	return TickEvent{Timestamp: time.Now()}
}

// TogglePlayEvent asks the UI to toggle between play and pause.
type TogglePlayEvent struct {
	Source    Source
	Timestamp time.Time
}

// NewTogglePlayEvent creates a toggle-play event.
func NewTogglePlayEvent(source Source) TogglePlayEvent {
	return TogglePlayEvent{
		Source:    source,
		Timestamp: time.Now(),
	}
}

// SkipEvent asks the UI to skip to the next session.
type SkipEvent struct {
	Source    Source
	Timestamp time.Time
}

// NewSkipEvent creates a skip event.
func NewSkipEvent(source Source) SkipEvent {
	return SkipEvent{
		Source:    source,
		Timestamp: time.Now(),
	}
}
