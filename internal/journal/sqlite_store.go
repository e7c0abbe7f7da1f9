package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guilhermegouw/pomo/internal/db"
)

// SQLiteStore implements Store on the journal table.
type SQLiteStore struct {
	db  *db.DB
	now func() time.Time
}

// NewSQLiteStore creates a store on an opened database.
func NewSQLiteStore(database *db.DB) *SQLiteStore {
	return &SQLiteStore{db: database, now: time.Now}
}

const selectColumns = `SELECT id, command, payload, outcome, error, duration_ms, created_at FROM journal`

// Record appends an entry.
func (s *SQLiteStore) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal (id, command, payload, outcome, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Command, e.Payload, string(e.Outcome), e.Error,
		e.Duration.Milliseconds(), e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording %s: %w", e.Command, err)
	}
	return e, nil
}

// Recent returns the newest entries.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return s.query(ctx, selectColumns+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// Failures returns the newest failed or unhandled entries.
func (s *SQLiteStore) Failures(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return s.query(ctx,
		selectColumns+` WHERE outcome IN (?, ?) ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		string(OutcomeFailed), string(OutcomeUnhandled), limit)
}

// Prune keeps the newest keep entries.
func (s *SQLiteStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, ErrInvalidLimit
	}

	var removed int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM journal WHERE rowid NOT IN (
				SELECT rowid FROM journal ORDER BY created_at DESC, rowid DESC LIMIT ?
			)`, keep)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}
	return removed, nil
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			outcome    string
			durationMs int64
			createdAt  int64
		)
		if err := rows.Scan(&e.ID, &e.Command, &e.Payload, &outcome, &e.Error, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.Outcome = Outcome(outcome)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading journal rows: %w", err)
	}
	return entries, nil
}
