package main

import (
	"context"

	"github.com/desertthunder/chinook/internal/menu"
	"github.com/urfave/cli/v3"
)

// Menu runs the interactive album manager.
func (r *Runner) Menu(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	prompter, cleanup := r.newPrompter()
	defer cleanup()

	albumMenu := menu.NewAlbumMenu(prompter, store.albums, store.artists, store.browser, store.activity, menu.AlbumMenuOpts{
		Logger:     r.logger,
		Output:     r.output,
		MaxResults: r.config.Limits.MaxQueryResults,
	})

	return albumMenu.Run(ctx)
}

// menuCommand launches the album manager console.
func menuCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "menu",
		Aliases: []string{"albums"},
		Usage:   "Interactive album manager",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.Menu,
	}
}
