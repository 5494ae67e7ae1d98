package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/chinook/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Import bulk-loads albums from a CSV file, reporting per-row progress.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	file := cmd.String("file")
	rate := cmd.Int("rate")
	if rate <= 0 {
		rate = r.config.Import.RowsPerSecond
	}

	src, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer src.Close()

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	engine := tasks.NewImportEngine(store.albums, store.artists, store.activity)

	r.logger.Info("starting import", "file", file, "rate", rate)
	r.writePlain("Importing albums from %s...\n\n", file)

	// Drain progress in a goroutine so a slow terminal cannot stall the
	// engine. done gates the summary until every update is printed.
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ParseSource:
				r.writePlain("%s\n", update.Message)
			case tasks.ImportRows:
				r.writePlain("  %s\n", update.Message)
			}
		}
	}()

	result, err := engine.ImportAlbums(ctx, progressCh, src, tasks.ImportOpts{
		RowsPerSecond:  rate,
		MaxTitleLength: r.config.Limits.MaxInputLength,
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Complete")
	r.writePlain("Imported: %d/%d rows\n", result.Imported, result.Total)

	if result.Skipped > 0 {
		r.writePlain("\nSkipped %d rows:\n", result.Skipped)
		for _, failure := range result.Failures {
			r.writePlain("  - %v\n", failure)
		}
	}

	return nil
}

// importCommand bulk-loads albums from CSV.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import albums from a CSV file",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "CSV file with a Title,ArtistId header",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "rate",
				Usage: "Rows per second to write, 0 uses the configured rate",
			},
		},
		Action: r.Import,
	}
}
