package main

import (
	"context"

	"github.com/desertthunder/chinook/internal/menu"
	"github.com/urfave/cli/v3"
)

// Browse runs the interactive table browser over every Chinook table.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	prompter, cleanup := r.newPrompter()
	defer cleanup()

	browseMenu := menu.NewBrowseMenu(prompter, store.browser, store.activity, menu.BrowseMenuOpts{
		Logger:     r.logger,
		Output:     r.output,
		MaxResults: r.config.Limits.MaxQueryResults,
	})

	return browseMenu.Run(ctx)
}

// browseCommand launches the generic table console.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tables"},
		Usage:   "Interactive browser for every Chinook table",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.Browse,
	}
}
