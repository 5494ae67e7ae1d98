package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/chinook/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	// Commands reload settings from --config themselves, so the runner only
	// needs the defaults up front.
	runner := NewRunner(RunnerOpts{
		Config: shared.DefaultConfig(),
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "chinook",
		Usage:    "Browse and manage the Chinook sample database",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrCancelled) {
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
