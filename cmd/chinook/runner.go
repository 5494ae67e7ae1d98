package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/prompt"
	"github.com/desertthunder/chinook/internal/repositories"
	"github.com/desertthunder/chinook/internal/shared"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// SetLogger swaps the runner's logger, used to redirect logs away from the
// terminal while a TUI owns it.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, menuCommand, browseCommand, tuiCommand, statsCommand, searchCommand, exportCommand, importCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// configFlag names the configuration file a command honors. Every command
// that touches the database carries one.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "chinook.toml",
	}
}

// reloadConfig swaps in the settings from --config when that file exists. A
// missing file keeps whatever the runner was built with.
func (r *Runner) reloadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, keeping current settings", "path", path, "error", err)
		return
	}
	r.config = config
}

// store bundles one open database handle with the repositories built on it.
type store struct {
	db       *sql.DB
	executor *repositories.Executor
	albums   *repositories.AlbumRepository
	artists  *repositories.ArtistRepository
	browser  *repositories.TableBrowser
	activity *repositories.ActivityRepository
}

func (s *store) Close() error {
	return s.db.Close()
}

// openStore opens the configured database and wires the repository layer on a
// shared executor. SQLite silently creates a missing file, so the path is
// checked first to catch a setup that never ran. The caller owns the returned
// store and must close it.
func (r *Runner) openStore() (*store, error) {
	path := r.config.Database.Path
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: database file %s, run 'chinook setup' first", shared.ErrNotFound, path)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	exec := repositories.NewExecutor(db, repositories.ExecutorOpts{
		MaxRetries: r.config.Limits.MaxRetries,
		RetryDelay: r.config.Limits.RetryDelay(),
		Logger:     r.logger,
	})

	return &store{
		db:       db,
		executor: exec,
		albums:   repositories.NewAlbumRepository(exec),
		artists:  repositories.NewArtistRepository(exec),
		browser:  repositories.NewTableBrowser(exec),
		activity: repositories.NewActivityRepository(exec),
	}, nil
}

// historyFile returns the path prompt history is persisted to.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".chinook_history")
}

// completer offers table names and the cancellation keywords, the inputs a
// menu session types most.
func completer(line string) []string {
	words := append([]string{"quit", "exit", "cancel", "yes", "no"}, models.Tables...)

	var completions []string
	lower := strings.ToLower(line)
	for _, word := range words {
		if strings.HasPrefix(word, lower) {
			completions = append(completions, word)
		}
	}
	return completions
}

// newPrompter wires a line editor with persistent history into a validating
// prompter. The returned cleanup saves history and releases the terminal.
func (r *Runner) newPrompter() (*prompt.Prompter, func()) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer)

	if f, err := os.Open(historyFile()); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	cleanup := func() {
		if path := historyFile(); path != "" {
			if f, err := os.Create(path); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}
		line.Close()
	}

	prompter := prompt.New(line, prompt.PrompterOpts{
		Out:        r.output,
		MaxRetries: r.config.Limits.MaxRetries,
	})

	return prompter, cleanup
}
