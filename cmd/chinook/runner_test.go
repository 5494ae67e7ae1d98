package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/repositories"
	"github.com/desertthunder/chinook/internal/shared"
	tu "github.com/desertthunder/chinook/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestConfig migrates and seeds a throwaway database file and returns a
// config pointing at it.
func newTestConfig(t *testing.T) *shared.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chinook_test.db")
	db, err := shared.NewDatabase(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := shared.SeedSampleData(db); err != nil {
		t.Fatalf("failed to seed sample data: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	config := shared.DefaultConfig()
	config.Database.Path = path
	config.Limits.RetryDelayMS = 1
	return config
}

// newTestApp wires a runner over a seeded database and returns the cli app
// plus the buffer command output lands in.
func newTestApp(t *testing.T) (*cli.Command, *bytes.Buffer, *shared.Config) {
	t.Helper()

	config := newTestConfig(t)
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(io.Discard),
		Output: output,
	})

	app := &cli.Command{
		Name:     "chinook",
		Commands: runner.register(),
	}
	return app, output, config
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		names := make(map[string]bool)
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "menu", "browse", "tui", "stats", "search", "export", "import", "history"} {
			if !names[want] {
				t.Errorf("expected command %q to be registered", want)
			}
		}
	})

	t.Run("openStore", func(t *testing.T) {
		t.Run("missing database file", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = filepath.Join(t.TempDir(), "missing.db")
			runner := NewRunner(RunnerOpts{Config: config})

			_, err := runner.openStore()
			if err == nil {
				t.Fatal("expected error for missing database file")
			}
			if !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
			if !strings.Contains(err.Error(), "chinook setup") {
				t.Errorf("expected setup hint in error, got %v", err)
			}
		})

		t.Run("opens migrated database", func(t *testing.T) {
			config := newTestConfig(t)
			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: shared.NewLogger(io.Discard),
			})

			store, err := runner.openStore()
			if err != nil {
				t.Fatalf("expected store to open, got %v", err)
			}
			defer store.Close()

			count, err := store.browser.RowCount(context.Background(), "albums")
			if err != nil {
				t.Fatalf("failed to count albums: %v", err)
			}
			if count != 7 {
				t.Errorf("expected 7 seeded albums, got %d", count)
			}
		})
	})

	t.Run("reloadConfig", func(t *testing.T) {
		t.Run("missing file keeps the current config", func(t *testing.T) {
			config := newTestConfig(t)
			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: shared.NewLogger(io.Discard),
				Output: &bytes.Buffer{},
			})
			app := &cli.Command{Name: "chinook", Commands: runner.register()}

			missing := filepath.Join(t.TempDir(), "nope.toml")
			if err := app.Run(context.Background(), []string{"chinook", "stats", "--config", missing}); err != nil {
				t.Fatalf("stats failed: %v", err)
			}
			if runner.config != config {
				t.Error("expected the config to survive a missing file")
			}
		})

		t.Run("existing file replaces the config", func(t *testing.T) {
			seeded := newTestConfig(t)
			tomlPath := filepath.Join(t.TempDir(), "alt.toml")
			body := fmt.Sprintf("[database]\npath = %q\nmax_open_conns = 1\nmax_idle_conns = 1\n", seeded.Database.Path)
			if err := os.WriteFile(tomlPath, []byte(body), 0644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{
				Logger: shared.NewLogger(io.Discard),
				Output: output,
			})
			app := &cli.Command{Name: "chinook", Commands: runner.register()}

			if err := app.Run(context.Background(), []string{"chinook", "stats", "--config", tomlPath}); err != nil {
				t.Fatalf("stats failed: %v", err)
			}
			if runner.config.Database.Path != seeded.Database.Path {
				t.Errorf("expected the config to point at %s, got %s", seeded.Database.Path, runner.config.Database.Path)
			}
			if !strings.Contains(output.String(), "albums") {
				t.Errorf("expected stats over the configured database, got %s", output.String())
			}
		})
	})

	t.Run("historyFile", func(t *testing.T) {
		path := historyFile()
		if path != "" && !strings.HasSuffix(path, ".chinook_history") {
			t.Errorf("unexpected history path %q", path)
		}
	})

	t.Run("completer", func(t *testing.T) {
		if got := completer("al"); len(got) != 1 || got[0] != "albums" {
			t.Errorf("expected [albums], got %v", got)
		}
		if got := completer("q"); len(got) != 1 || got[0] != "quit" {
			t.Errorf("expected [quit], got %v", got)
		}
		if got := completer("zz"); len(got) != 0 {
			t.Errorf("expected no completions, got %v", got)
		}
	})
}

func TestSetupCommand(t *testing.T) {
	originalDir := tu.MustGetwd(t)
	tu.MustChdir(t, t.TempDir())
	defer tu.MustChdir(t, originalDir)

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger: shared.NewLogger(io.Discard),
		Output: output,
	})
	app := &cli.Command{Name: "chinook", Commands: runner.register()}

	if err := app.Run(context.Background(), []string{"chinook", "setup", "--seed"}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tu.AssertFileExists(t, "chinook.toml")
	tu.AssertFileExists(t, "chinook.db")

	db, err := shared.NewDatabase("chinook.db")
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM albums").Scan(&count); err != nil {
		t.Fatalf("failed to count albums: %v", err)
	}
	if count != 7 {
		t.Errorf("expected 7 seeded albums, got %d", count)
	}

	// Reruns reuse the config and reseed idempotently.
	if err := app.Run(context.Background(), []string{"chinook", "setup", "--seed"}); err != nil {
		t.Fatalf("second setup failed: %v", err)
	}
}

func TestStatsCommand(t *testing.T) {
	t.Run("renders a table of counts", func(t *testing.T) {
		app, output, _ := newTestApp(t)

		if err := app.Run(context.Background(), []string{"chinook", "stats"}); err != nil {
			t.Fatalf("stats failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Chinook Database Statistics") {
			t.Errorf("expected header, got %s", result)
		}
		if !strings.Contains(result, "albums") || !strings.Contains(result, "total") {
			t.Errorf("expected albums and total rows, got %s", result)
		}
	})

	t.Run("emits JSON when asked", func(t *testing.T) {
		app, output, _ := newTestApp(t)

		if err := app.Run(context.Background(), []string{"chinook", "stats", "--json"}); err != nil {
			t.Fatalf("stats failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, `"table": "albums"`) {
			t.Errorf("expected JSON counts, got %s", result)
		}
		if !strings.Contains(result, `"count": 7`) {
			t.Errorf("expected album count in JSON, got %s", result)
		}
	})
}

func TestSearchCommand(t *testing.T) {
	t.Run("finds albums by title", func(t *testing.T) {
		app, output, _ := newTestApp(t)

		if err := app.Run(context.Background(), []string{"chinook", "search", "rock"}); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Let There Be Rock") {
			t.Errorf("expected matching album, got %s", result)
		}
		if !strings.Contains(result, "Found 2 album(s).") {
			t.Errorf("expected match count, got %s", result)
		}
	})

	t.Run("reports when nothing matches", func(t *testing.T) {
		app, output, _ := newTestApp(t)

		if err := app.Run(context.Background(), []string{"chinook", "search", "polka"}); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if !strings.Contains(output.String(), `No albums found matching "polka".`) {
			t.Errorf("expected no-match message, got %s", output.String())
		}
	})

	t.Run("requires a term", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		err := app.Run(context.Background(), []string{"chinook", "search"})
		if err == nil {
			t.Fatal("expected error without a search term")
		}
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("rejects forbidden characters", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		err := app.Run(context.Background(), []string{"chinook", "search", `Rock"; DROP TABLE albums`})
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !errors.Is(err, shared.ErrForbiddenChars) {
			t.Errorf("expected ErrForbiddenChars, got %v", err)
		}
	})
}

func TestExportCommand(t *testing.T) {
	t.Run("writes a CSV file", func(t *testing.T) {
		app, output, _ := newTestApp(t)
		path := filepath.Join(t.TempDir(), "genres.csv")

		err := app.Run(context.Background(), []string{"chinook", "export", "--table", "genres", "--output", path})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		if !strings.Contains(output.String(), "Exported 6 rows from genres") {
			t.Errorf("expected export summary, got %s", output.String())
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "GenreId,Name") {
			t.Errorf("expected CSV header, got %s", content)
		}
		if !strings.Contains(content, "Blues") {
			t.Errorf("expected seeded genre in export, got %s", content)
		}
	})

	t.Run("rejects unknown tables", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		err := app.Run(context.Background(), []string{"chinook", "export", "--table", "users; --"})
		if err == nil {
			t.Fatal("expected error for unknown table")
		}
		if !errors.Is(err, shared.ErrUnknownTable) {
			t.Errorf("expected ErrUnknownTable, got %v", err)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		err := app.Run(context.Background(), []string{"chinook", "export", "--table", "genres", "--format", "xml"})
		if err == nil {
			t.Fatal("expected error for unknown format")
		}
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestImportCommand(t *testing.T) {
	app, output, config := newTestApp(t)

	csvPath := filepath.Join(t.TempDir(), "albums.csv")
	source := "Title,ArtistId\nBrand New Day,1\nOrphan Record,999\n"
	if err := os.WriteFile(csvPath, []byte(source), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	err := app.Run(context.Background(), []string{"chinook", "import", "--file", csvPath, "--rate", "1000"})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	result := output.String()
	if !strings.Contains(result, "Import Complete") {
		t.Errorf("expected completion header, got %s", result)
	}
	if !strings.Contains(result, "Imported: 1/2 rows") {
		t.Errorf("expected import summary, got %s", result)
	}
	if !strings.Contains(result, "line 3") {
		t.Errorf("expected skipped line report, got %s", result)
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM albums").Scan(&count); err != nil {
		t.Fatalf("failed to count albums: %v", err)
	}
	if count != 8 {
		t.Errorf("expected 8 albums after import, got %d", count)
	}
}

func TestHistoryCommand(t *testing.T) {
	t.Run("empty log", func(t *testing.T) {
		app, output, _ := newTestApp(t)

		if err := app.Run(context.Background(), []string{"chinook", "history"}); err != nil {
			t.Fatalf("history failed: %v", err)
		}

		if !strings.Contains(output.String(), "No activity recorded yet.") {
			t.Errorf("expected empty-log message, got %s", output.String())
		}
	})

	t.Run("renders recent entries with totals", func(t *testing.T) {
		app, output, config := newTestApp(t)

		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		exec := repositories.NewExecutor(db, repositories.ExecutorOpts{})
		activity := repositories.NewActivityRepository(exec)
		ctx := context.Background()
		if err := activity.Record(ctx, models.ActionInsert, "albums", "added album 8"); err != nil {
			t.Fatalf("failed to record activity: %v", err)
		}
		if err := activity.Record(ctx, models.ActionDelete, "genres", "deleted genre 6"); err != nil {
			t.Fatalf("failed to record activity: %v", err)
		}
		db.Close()

		if err := app.Run(context.Background(), []string{"chinook", "history", "--limit", "10"}); err != nil {
			t.Fatalf("history failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "added album 8") || !strings.Contains(result, "deleted genre 6") {
			t.Errorf("expected recorded entries, got %s", result)
		}
		if !strings.Contains(result, "Totals: delete 1, insert 1") {
			t.Errorf("expected totals line, got %s", result)
		}
	})
}
