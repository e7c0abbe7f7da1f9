package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T, path string) *DB {
	t.Helper()
	database, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestOpen(t *testing.T) {
	t.Run("creates database file in nested directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", FileName)

		openTest(t, dbPath)

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("runs migrations", func(t *testing.T) {
		database := openTest(t, filepath.Join(t.TempDir(), FileName))

		var tableName string
		err := database.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type='table' AND name='journal'").Scan(&tableName)
		if err != nil {
			t.Fatalf("journal table not created: %v", err)
		}
		if database.Version() != 1 {
			t.Errorf("Version() = %d, want 1", database.Version())
		}
	})

	t.Run("reopening is idempotent", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), FileName)

		first, err := Open(context.Background(), dbPath)
		if err != nil {
			t.Fatalf("first Open() error = %v", err)
		}
		_ = first.Close()

		second := openTest(t, dbPath)
		if second.Version() != 1 {
			t.Errorf("Version() = %d, want 1", second.Version())
		}
	})

	t.Run("enables WAL mode", func(t *testing.T) {
		database := openTest(t, filepath.Join(t.TempDir(), FileName))

		var journalMode string
		if err := database.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode); err != nil {
			t.Fatalf("failed to get journal_mode: %v", err)
		}
		if journalMode != "wal" {
			t.Errorf("journal_mode = %q, want %q", journalMode, "wal")
		}
	})
}

func TestDB_Path(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), FileName)
	database := openTest(t, dbPath)

	if got := database.Path(); got != dbPath {
		t.Errorf("Path() = %q, want %q", got, dbPath)
	}
}

func TestDB_WithTx(t *testing.T) {
	database := openTest(t, filepath.Join(t.TempDir(), FileName))
	ctx := context.Background()

	insert := `INSERT INTO journal (id, command, outcome, created_at) VALUES (?, 'quit', 'ok', 0)`

	t.Run("commits on success", func(t *testing.T) {
		err := database.WithTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, insert, "tx-test")
			return err
		})
		if err != nil {
			t.Fatalf("WithTx() error = %v", err)
		}

		var id string
		if err := database.QueryRowContext(ctx, "SELECT id FROM journal WHERE id = 'tx-test'").Scan(&id); err != nil {
			t.Errorf("committed row not found: %v", err)
		}
	})

	t.Run("rolls back on error", func(t *testing.T) {
		err := database.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, insert, "rollback-test"); err != nil {
				return err
			}
			return context.Canceled
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("WithTx() error = %v, want context.Canceled", err)
		}

		var id string
		err = database.QueryRowContext(ctx, "SELECT id FROM journal WHERE id = 'rollback-test'").Scan(&id)
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("rolled back row should not exist, got %v", err)
		}
	})

	t.Run("rejects unknown outcome", func(t *testing.T) {
		_, err := database.ExecContext(ctx,
			`INSERT INTO journal (id, command, outcome, created_at) VALUES ('bad', 'quit', 'maybe', 0)`)
		if err == nil {
			t.Error("expected CHECK constraint violation")
		}
	})
}

func TestDB_Close(t *testing.T) {
	database, err := Open(context.Background(), filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := database.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if err := database.Conn().PingContext(context.Background()); err == nil {
		t.Error("connection should be closed")
	}
}
