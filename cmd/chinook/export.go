package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/chinook/internal/formatter"
	"github.com/desertthunder/chinook/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export writes a full table to a file in the chosen format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	table := cmd.String("table")
	format := cmd.String("format")
	output := cmd.String("output")
	limit := cmd.Int("limit")

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r.logger.Info("exporting table", "table", table, "format", format)

	dump, err := store.browser.Rows(ctx, table, limit)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", table, err)
	}

	path, err := formatter.WriteExport(dump, format, output)
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d rows from %s to %s\n", len(dump.Rows), table, path)

	if cmd.Bool("open") {
		if err := shared.OpenPath(path); err != nil {
			r.logger.Warn("failed to open export", "error", err)
		}
	}

	return nil
}

// exportCommand dumps one table to CSV, Markdown, or plain text.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a table to a file",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "table",
				Aliases:  []string{"t"},
				Usage:    "Table to export",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Export format (%s)", strings.Join(formatter.Formats(), ", ")),
				Value:   formatter.FormatCSV,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: {table}_export.{ext})",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum rows to export, 0 for all",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the exported file with the system handler",
			},
		},
		Action: r.Export,
	}
}
