// Package prompt collects validated input from an interactive user.
//
// A [Prompter] wraps a line editor (in production a *liner.State, in tests a
// scripted fake) and re-asks on invalid input up to a fixed retry budget.
// Typing "quit", "exit", or "cancel" at any prompt, or pressing Ctrl-C or
// Ctrl-D, abandons the operation with [shared.ErrCancelled] so menu loops
// can back out without writing anything.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
	"github.com/desertthunder/chinook/internal/validate"
	"github.com/peterh/liner"
)

// DefaultMaxRetries bounds how many times a prompt re-asks before giving up.
const DefaultMaxRetries = 3

// cancelWords abandon the current operation when typed at any prompt.
var cancelWords = []string{"quit", "exit", "cancel"}

// LineReader is the line-editing surface a Prompter reads from.
// *liner.State satisfies it directly.
type LineReader interface {
	Prompt(label string) (string, error)
	AppendHistory(item string)
}

// Prompter asks questions and validates the answers before they reach a
// repository. Invalid answers are reported to out and re-asked until the
// retry budget runs out.
type Prompter struct {
	lines      LineReader
	out        io.Writer
	maxRetries int
}

// PrompterOpts contains configuration options for creating a Prompter.
type PrompterOpts struct {
	Out        io.Writer
	MaxRetries int
}

// New creates a Prompter reading from lines. Zero-valued options fall back
// to stdout and the default retry budget.
func New(lines LineReader, opts PrompterOpts) *Prompter {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	return &Prompter{lines: lines, out: opts.Out, maxRetries: opts.MaxRetries}
}

// String asks for free text and validates it with [validate.String].
func (p *Prompter) String(label, field string, maxLength int) (string, error) {
	return ask(p, label, func(raw string) (string, error) {
		return validate.String(raw, field, maxLength)
	})
}

// PositiveInt asks for an integer greater than zero.
func (p *Prompter) PositiveInt(label, field string) (int, error) {
	return ask(p, label, func(raw string) (int, error) {
		return validate.PositiveInt(raw, field)
	})
}

// Choice asks for a menu selection between min and max inclusive.
func (p *Prompter) Choice(label string, min, max int) (int, error) {
	return ask(p, label, func(raw string) (int, error) {
		return validate.MenuChoice(raw, min, max)
	})
}

// ChoiceDefault behaves like [Prompter.Choice] but treats an empty answer as
// choosing fallback.
func (p *Prompter) ChoiceDefault(label string, min, max, fallback int) (int, error) {
	return ask(p, label, func(raw string) (int, error) {
		if strings.TrimSpace(raw) == "" {
			return fallback, nil
		}
		return validate.MenuChoice(raw, min, max)
	})
}

// Confirm asks a yes/no question. Only an explicit yes returns true.
func (p *Prompter) Confirm(label string) (bool, error) {
	return ask(p, label, validate.Confirmation)
}

// OneOf asks until the answer matches one of options, case-insensitively,
// and returns the canonical option.
func (p *Prompter) OneOf(label string, options ...string) (string, error) {
	return ask(p, label, func(raw string) (string, error) {
		answer := strings.ToLower(strings.TrimSpace(raw))
		for _, opt := range options {
			if answer == strings.ToLower(opt) {
				return opt, nil
			}
		}
		return "", fmt.Errorf("%w: expected one of %s", shared.ErrInvalidInput, strings.Join(options, ", "))
	})
}

// Column asks for one of the given schema columns by name.
func (p *Prompter) Column(label string, cols []models.Column) (models.Column, error) {
	return ask(p, label, func(raw string) (models.Column, error) {
		return validate.ColumnName(raw, cols)
	})
}

// optional carries a validated value plus whether the user supplied one.
type optional[T any] struct {
	value T
	set   bool
}

// OptionalString behaves like [Prompter.String] but an empty answer means
// keep the current value: it returns set=false without error.
func (p *Prompter) OptionalString(label, field string, maxLength int) (string, bool, error) {
	opt, err := ask(p, label, func(raw string) (optional[string], error) {
		if strings.TrimSpace(raw) == "" {
			return optional[string]{}, nil
		}
		value, err := validate.String(raw, field, maxLength)
		if err != nil {
			return optional[string]{}, err
		}
		return optional[string]{value: value, set: true}, nil
	})
	return opt.value, opt.set, err
}

// OptionalPositiveInt behaves like [Prompter.PositiveInt] but an empty
// answer means keep the current value.
func (p *Prompter) OptionalPositiveInt(label, field string) (int, bool, error) {
	opt, err := ask(p, label, func(raw string) (optional[int], error) {
		if strings.TrimSpace(raw) == "" {
			return optional[int]{}, nil
		}
		value, err := validate.PositiveInt(raw, field)
		if err != nil {
			return optional[int]{}, err
		}
		return optional[int]{value: value, set: true}, nil
	})
	return opt.value, opt.set, err
}

// Pause waits for the user to press Enter. Input is discarded.
func (p *Prompter) Pause(label string) {
	_, _ = p.lines.Prompt(label)
}

// ask reads lines until parse accepts one, the user cancels, or the retry
// budget is exhausted. Validation failures are printed to p.out with the
// attempts remaining.
func ask[T any](p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	var zero T

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		line, err := p.lines.Prompt(label)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out, "Operation cancelled.")
				return zero, shared.ErrCancelled
			}
			return zero, fmt.Errorf("failed to read input: %w", err)
		}

		trimmed := strings.TrimSpace(line)
		if isCancelWord(trimmed) {
			fmt.Fprintln(p.out, "Operation cancelled.")
			return zero, shared.ErrCancelled
		}

		value, err := parse(line)
		if err != nil {
			fmt.Fprintf(p.out, "Error: %v\n", err)
			if attempt < p.maxRetries {
				fmt.Fprintf(p.out, "Please try again (attempt %d of %d).\n", attempt+1, p.maxRetries)
			}
			continue
		}

		if trimmed != "" {
			p.lines.AppendHistory(trimmed)
		}
		return value, nil
	}

	fmt.Fprintln(p.out, "Maximum retry attempts reached.")
	return zero, shared.ErrRetriesExhausted
}

func isCancelWord(input string) bool {
	lowered := strings.ToLower(input)
	for _, word := range cancelWords {
		if lowered == word {
			return true
		}
	}
	return false
}
