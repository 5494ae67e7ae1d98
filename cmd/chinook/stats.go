package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/chinook/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Stats prints per-table row counts.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.browser.Counts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	if useJSON {
		return r.writeJSON(counts, pretty)
	}

	r.writePlainHeader("Chinook Database Statistics")
	r.writePlain("%s\n", formatter.RenderCounts(counts))
	return nil
}

// statsCommand reports table row counts.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show row counts for every table",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Stats,
	}
}
