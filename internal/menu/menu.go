// package menu implements the interactive consoles for the fortified tools
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chinook/internal/prompt"
	"github.com/desertthunder/chinook/internal/repositories"
	"github.com/desertthunder/chinook/internal/shared"
)

// DefaultMaxResults caps listings when the user picks the limit option.
const DefaultMaxResults = 200

// Input budgets carried over from the interactive flows: titles and generic
// column values stay under 100 runes, search terms under 50.
const (
	maxTitleLength  = 100
	maxValueLength  = 100
	maxSearchLength = 50
)

// console holds the plumbing every menu loop shares: the prompter, the
// output writer, the logger and the activity log.
type console struct {
	prompter *prompt.Prompter
	output   io.Writer
	logger   *log.Logger
	activity *repositories.ActivityRepository
}

func (c *console) write(format string, args ...any) {
	fmt.Fprintf(c.output, format+"\n", args...)
}

// report prints an operation failure unless the prompt layer already
// explained it: cancellations and exhausted retries are routine exits.
func (c *console) report(err error) {
	if err == nil || errors.Is(err, shared.ErrCancelled) || errors.Is(err, shared.ErrRetriesExhausted) {
		return
	}
	c.write("Error: %v", err)
}

// askLimit asks whether to show every row or cap the listing at limit. Small
// tables skip the question and show everything.
func (c *console) askLimit(what string, total, limit int) (int, error) {
	if total <= limit {
		return 0, nil
	}

	label := fmt.Sprintf("Show all %d %s or limit to %d? (all/limit): ", total, what, limit)

	answer, err := c.prompter.OneOf(label, "all", "limit")
	if err != nil {
		return 0, err
	}

	if answer == "all" {
		return 0, nil
	}

	return limit, nil
}

// recordActivity logs a committed write to the activity log. A logging
// failure is reported but never fails the operation that already committed.
func (c *console) recordActivity(ctx context.Context, action, table, detail string) {
	if c.activity == nil {
		return
	}

	if err := c.activity.Record(ctx, action, table, detail); err != nil {
		c.logger.Warn("Failed to record activity", "action", action, "table", table, "error", err)
	}
}
