package menu

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/repositories"
	"github.com/desertthunder/chinook/internal/shared"
)

// newTestStore opens a migrated, seeded in-memory database and returns an
// executor over it.
func newTestStore(t *testing.T) *repositories.Executor {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// Pin to one connection so the pool cannot hand the test a second,
	// empty in-memory database.
	shared.ConfigureDatabase(db, 1, 1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := shared.SeedSampleData(db); err != nil {
		t.Fatalf("failed to seed sample data: %v", err)
	}

	return repositories.NewExecutor(db, repositories.ExecutorOpts{RetryDelay: time.Millisecond})
}

func countRows(t *testing.T, exec *repositories.Executor, table string) int {
	t.Helper()
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := exec.ScanRow(context.Background(), []any{&count}, query); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}

func recentActivity(t *testing.T, exec *repositories.Executor) []models.ActivityEntry {
	t.Helper()
	entries, err := repositories.NewActivityRepository(exec).Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("failed to read activity log: %v", err)
	}
	return entries
}

func quietLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}
