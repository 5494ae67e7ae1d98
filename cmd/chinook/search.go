package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/chinook/internal/formatter"
	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
	"github.com/desertthunder/chinook/internal/validate"
	"github.com/urfave/cli/v3"
)

// Search terms share the album manager's budget.
const maxSearchLength = 50

// Search finds albums whose title or artist matches a term.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	raw := cmd.StringArg("term")
	if raw == "" {
		return fmt.Errorf("%w: search term", shared.ErrMissingArgument)
	}

	term, err := validate.String(raw, "search term", maxSearchLength)
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r.logger.Info("searching albums", "term", term, "limit", limit)

	albums, err := store.albums.Search(ctx, term, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(albums, pretty)
	}

	if len(albums) == 0 {
		r.writePlain("No albums found matching %q.\n", term)
		return nil
	}

	r.writePlain("%s\n", formatter.RenderTable(models.DumpAlbums(albums), formatter.DefaultCellWidth))
	r.writePlain("Found %d album(s).\n", len(albums))
	return nil
}

// searchCommand finds albums by title or artist name.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search albums by title or artist name",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "term",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of albums to return",
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
		Action: r.Search,
	}
}
