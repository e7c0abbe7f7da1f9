// Package journal keeps a persistent record of bridge dispatches: every
// failure, every unrecognized command, and the host effects worth auditing.
package journal

import (
	"context"
	"errors"
	"time"
)

// Outcome is how a dispatch ended.
type Outcome string

// Dispatch outcomes.
const (
	OutcomeOK        Outcome = "ok"
	OutcomeFailed    Outcome = "failed"
	OutcomeUnhandled Outcome = "unhandled"
)

// Entry is one journaled dispatch.
type Entry struct { //nolint:govet // fieldalignment: preserving logical field order
	ID        string
	Command   string
	Payload   string
	Outcome   Outcome
	Error     string
	Duration  time.Duration
	CreatedAt time.Time
}

// ErrInvalidLimit is returned for a non-positive limit or keep count.
var ErrInvalidLimit = errors.New("limit must be positive")

// Store persists journal entries.
type Store interface {
	// Record appends an entry, filling in ID and CreatedAt when empty.
	Record(ctx context.Context, e Entry) (Entry, error)
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
	// Failures returns up to limit failed or unhandled entries, newest first.
	Failures(ctx context.Context, limit int) ([]Entry, error)
	// Prune deletes all but the newest keep entries and reports how many
	// were removed.
	Prune(ctx context.Context, keep int) (int64, error)
}
