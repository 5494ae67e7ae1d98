package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// ActivityRepository appends to and reads the activity_log audit trail.
// Entries are written only after the corresponding data change committed;
// cancelled or failed operations leave no trace here.
type ActivityRepository struct {
	exec *Executor
}

// NewActivityRepository creates a new ActivityRepository using the given executor
func NewActivityRepository(exec *Executor) *ActivityRepository {
	return &ActivityRepository{exec: exec}
}

// Record appends one audit entry with a generated ID and the current time.
// action should be one of the models.Action constants.
func (r *ActivityRepository) Record(ctx context.Context, action, table, detail string) error {
	query := "INSERT INTO activity_log (Id, Action, TableName, Detail, CreatedAt) VALUES (?, ?, ?, ?, ?)"
	_, err := r.exec.Exec(ctx, query, shared.GenerateID(), action, table, detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. A limit of zero or
// below returns everything.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	query := "SELECT Id, Action, TableName, Detail, CreatedAt FROM activity_log ORDER BY CreatedAt DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.TableName, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// CountByAction returns how many entries exist per action, for the stats view.
func (r *ActivityRepository) CountByAction(ctx context.Context) (map[string]int, error) {
	rows, err := r.exec.Query(ctx, "SELECT Action, COUNT(*) FROM activity_log GROUP BY Action")
	if err != nil {
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, fmt.Errorf("failed to scan activity count: %w", err)
		}
		counts[action] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}
