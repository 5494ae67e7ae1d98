package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/desertthunder/chinook/internal/formatter"
	"github.com/desertthunder/chinook/internal/models"
	"github.com/urfave/cli/v3"
)

// History lists recent activity-log entries, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.activity.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read activity log: %w", err)
	}

	if useJSON {
		return r.writeJSON(entries, pretty)
	}

	if len(entries) == 0 {
		r.writePlain("No activity recorded yet.\n")
		return nil
	}

	r.writePlain("%s\n", formatter.RenderTable(models.DumpActivity(entries), formatter.DefaultCellWidth))

	counts, err := store.activity.CountByAction(ctx)
	if err != nil {
		return fmt.Errorf("failed to count activity: %w", err)
	}

	actions := make([]string, 0, len(counts))
	for action := range counts {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		parts = append(parts, fmt.Sprintf("%s %d", action, counts[action]))
	}
	r.writePlain("Totals: %s\n", strings.Join(parts, ", "))

	return nil
}

// historyCommand lists recent entries from the activity log.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent write activity",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum entries to show",
				Value: 20,
			},
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
		Action: r.History,
	}
}
