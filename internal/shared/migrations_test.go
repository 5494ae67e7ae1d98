package shared

import (
	"database/sql"
	"testing"
)

func newTestDatabase(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	// A pooled second connection would see a different empty in-memory
	// database, so pin the pool to a single connection.
	ConfigureDatabase(db, 1, 1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" {
				t.Errorf("migration version %d missing up SQL", m.Version)
			}
			if m.Down == "" {
				t.Errorf("migration version %d missing down SQL", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db := newTestDatabase(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected at least one migration to be applied")
		}

		for _, table := range []string{"albums", "artists", "tracks", "activity_log"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after migrations: %v", table, err)
			}
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		// The newest migration creates activity_log, so rolling back should
		// drop it while leaving the Chinook schema in place.
		if _, err := db.Exec("SELECT 1 FROM activity_log LIMIT 1"); err == nil {
			t.Error("activity_log table should be dropped after rollback")
		}
		if _, err := db.Exec("SELECT 1 FROM albums LIMIT 1"); err != nil {
			t.Errorf("albums table should survive rollback of the activity_log migration: %v", err)
		}

		var newCount int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&newCount)
		if err != nil {
			t.Fatalf("failed to query schema_migrations after rollback: %v", err)
		}
		if newCount >= count {
			t.Errorf("expected migration count to decrease after rollback, got %d (was %d)", newCount, count)
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db := newTestDatabase(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}

		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})
}

func TestSeedSampleData(t *testing.T) {
	t.Run("Seeds All Tables", func(t *testing.T) {
		db := newTestDatabase(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if err := SeedSampleData(db); err != nil {
			t.Fatalf("failed to seed sample data: %v", err)
		}

		tc := []struct {
			table string
			want  int
		}{
			{"artists", 8},
			{"albums", 7},
			{"media_types", 5},
			{"genres", 6},
			{"tracks", 10},
			{"playlists", 2},
			{"playlist_track", 5},
			{"employees", 3},
			{"customers", 3},
			{"invoices", 2},
			{"invoice_items", 3},
		}
		for _, c := range tc {
			var count int
			if err := db.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(&count); err != nil {
				t.Fatalf("failed to count %s: %v", c.table, err)
			}
			if count != c.want {
				t.Errorf("expected %d rows in %s, got %d", c.want, c.table, count)
			}
		}
	})

	t.Run("Reseeding Is Idempotent", func(t *testing.T) {
		db := newTestDatabase(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if err := SeedSampleData(db); err != nil {
			t.Fatalf("failed to seed sample data: %v", err)
		}
		if err := SeedSampleData(db); err != nil {
			t.Fatalf("failed to reseed sample data: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM albums").Scan(&count); err != nil {
			t.Fatalf("failed to count albums: %v", err)
		}
		if count != 7 {
			t.Errorf("expected 7 albums after reseeding, got %d", count)
		}
	})

	t.Run("Requires Schema", func(t *testing.T) {
		db := newTestDatabase(t)

		if err := SeedSampleData(db); err == nil {
			t.Error("seeding an unmigrated database should fail")
		}
	})
}
