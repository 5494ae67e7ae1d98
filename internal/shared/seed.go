package shared

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed sql/seed_data.sql
var seedData string

// SeedSampleData loads the bundled Chinook sample rows into db. The schema
// must already be migrated. Reseeding an already-seeded database is a no-op
// because the script only inserts rows whose primary keys are absent.
func SeedSampleData(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if err := execScript(tx, seedData); err != nil {
		return fmt.Errorf("failed to seed sample data: %w", err)
	}

	return tx.Commit()
}
