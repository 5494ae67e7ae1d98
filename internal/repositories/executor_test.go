package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/desertthunder/chinook/internal/shared"
	"github.com/mattn/go-sqlite3"
)

func TestIsTransient(t *testing.T) {
	tc := []struct {
		name string
		err  error
		want bool
	}{
		{name: "busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: true},
		{name: "locked", err: sqlite3.Error{Code: sqlite3.ErrLocked}, want: true},
		{name: "wrapped busy", err: fmt.Errorf("exec: %w", sqlite3.Error{Code: sqlite3.ErrBusy}), want: true},
		{name: "constraint violation", err: sqlite3.Error{Code: sqlite3.ErrConstraint}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "no rows", err: sql.ErrNoRows, want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExecutorRetry(t *testing.T) {
	exec := setupTestDB(t)

	t.Run("gives up after the retry budget", func(t *testing.T) {
		attempts := 0
		err := exec.withRetry(context.Background(), func() error {
			attempts++
			return sqlite3.Error{Code: sqlite3.ErrBusy}
		})

		if attempts != DefaultMaxRetries {
			t.Errorf("expected %d attempts, got %d", DefaultMaxRetries, attempts)
		}
		if !errors.Is(err, shared.ErrQueryFailed) {
			t.Errorf("expected %v, got %v", shared.ErrQueryFailed, err)
		}
	})

	t.Run("recovers when the database frees up", func(t *testing.T) {
		attempts := 0
		err := exec.withRetry(context.Background(), func() error {
			attempts++
			if attempts == 1 {
				return sqlite3.Error{Code: sqlite3.ErrLocked}
			}
			return nil
		})

		if err != nil {
			t.Fatalf("expected recovery, got %v", err)
		}
		if attempts != 2 {
			t.Errorf("expected 2 attempts, got %d", attempts)
		}
	})

	t.Run("non-transient errors return immediately", func(t *testing.T) {
		attempts := 0
		wantErr := errors.New("syntax error")
		err := exec.withRetry(context.Background(), func() error {
			attempts++
			return wantErr
		})

		if attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", attempts)
		}
		if !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
		if errors.Is(err, shared.ErrQueryFailed) {
			t.Error("non-transient failures should not be wrapped as retry exhaustion")
		}
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := exec.withRetry(ctx, func() error {
			return sqlite3.Error{Code: sqlite3.ErrBusy}
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected %v, got %v", context.Canceled, err)
		}
	})
}

func TestExecutorStatements(t *testing.T) {
	ctx := context.Background()

	t.Run("Exec", func(t *testing.T) {
		exec := setupTestDB(t)

		result, err := exec.Exec(ctx, "INSERT INTO genres (Name) VALUES (?)", "Ska")
		if err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
		if affected, _ := result.RowsAffected(); affected != 1 {
			t.Errorf("expected 1 row affected, got %d", affected)
		}

		if _, err := exec.Exec(ctx, "INSERT INTO nowhere VALUES (1)"); err == nil {
			t.Error("inserting into a missing table should fail")
		}
	})

	t.Run("Query", func(t *testing.T) {
		exec := setupTestDB(t)

		rows, err := exec.Query(ctx, "SELECT Name FROM artists WHERE ArtistId > ? ORDER BY ArtistId", 6)
		if err != nil {
			t.Fatalf("failed to query: %v", err)
		}
		defer rows.Close()

		var names []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatalf("failed to scan: %v", err)
			}
			names = append(names, name)
		}
		if err := rows.Err(); err != nil {
			t.Fatalf("row iteration error: %v", err)
		}
		if len(names) != 2 || names[0] != "Apocalyptica" {
			t.Errorf("unexpected names: %v", names)
		}
	})

	t.Run("ScanRow", func(t *testing.T) {
		exec := setupTestDB(t)

		var title string
		var artistID int
		err := exec.ScanRow(ctx, []any{&title, &artistID}, "SELECT Title, ArtistId FROM albums WHERE AlbumId = ?", 5)
		if err != nil {
			t.Fatalf("failed to scan row: %v", err)
		}
		if title != "Big Ones" || artistID != 3 {
			t.Errorf("unexpected row: %q %d", title, artistID)
		}

		err = exec.ScanRow(ctx, []any{&title}, "SELECT Title FROM albums WHERE AlbumId = ?", 9999)
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected %v, got %v", sql.ErrNoRows, err)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		exec := NewExecutor(nil, ExecutorOpts{})
		if exec.maxRetries != DefaultMaxRetries {
			t.Errorf("expected default retry budget %d, got %d", DefaultMaxRetries, exec.maxRetries)
		}
		if exec.retryDelay != DefaultRetryDelay {
			t.Errorf("expected default retry delay %v, got %v", DefaultRetryDelay, exec.retryDelay)
		}
		if exec.logger == nil {
			t.Error("expected a default logger")
		}
	})
}

// TestExecutorContention exercises the retry path against a real locked
// database file rather than a fabricated error.
func TestExecutorContention(t *testing.T) {
	path := t.TempDir() + "/contention.db"

	db, err := shared.NewDatabase(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE counters (n INTEGER)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	// A second handle without a busy timeout fails fast with SQLITE_BUSY
	// while the first holds the write lock.
	raw, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open second handle: %v", err)
	}
	defer raw.Close()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	if _, err := tx.Exec("INSERT INTO counters (n) VALUES (1)"); err != nil {
		t.Fatalf("failed to take write lock: %v", err)
	}

	exec := NewExecutor(raw, ExecutorOpts{MaxRetries: 2, RetryDelay: 10 * time.Millisecond})
	_, execErr := exec.Exec(context.Background(), "INSERT INTO counters (n) VALUES (2)")
	if execErr == nil {
		t.Fatal("expected a busy error while the write lock is held")
	}
	if !errors.Is(execErr, shared.ErrQueryFailed) {
		t.Errorf("expected retry exhaustion, got %v", execErr)
	}

	// Once the lock clears the same statement succeeds without retries.
	if err := tx.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	if _, err := exec.Exec(context.Background(), "INSERT INTO counters (n) VALUES (3)"); err != nil {
		t.Errorf("expected insert to succeed after commit: %v", err)
	}
}
