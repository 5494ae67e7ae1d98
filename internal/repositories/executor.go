package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chinook/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// Default retry budget for statements hitting a busy database.
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// Executor runs SQL statements against a single database handle, retrying a
// small fixed number of times when SQLite reports the database busy or
// locked. Non-transient errors are returned immediately.
type Executor struct {
	db         *sql.DB
	maxRetries int
	retryDelay time.Duration
	logger     *log.Logger
}

// ExecutorOpts contains configuration options for creating an Executor.
type ExecutorOpts struct {
	MaxRetries int
	RetryDelay time.Duration
	Logger     *log.Logger
}

// NewExecutor creates an Executor over db. Zero-valued options fall back to
// the package defaults.
func NewExecutor(db *sql.DB, opts ExecutorOpts) *Executor {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Executor{
		db:         db,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		logger:     opts.Logger,
	}
}

// DB exposes the underlying handle for callers that manage their own
// statements, such as the migration runner.
func (e *Executor) DB() *sql.DB {
	return e.db
}

// Exec runs a statement that returns no rows.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := e.withRetry(ctx, func() error {
		var err error
		res, err = e.db.ExecContext(ctx, query, args...)
		return err
	})
	return res, err
}

// Query runs a statement that returns rows. The caller owns the returned
// rows and must close them.
func (e *Executor) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := e.withRetry(ctx, func() error {
		var err error
		rows, err = e.db.QueryContext(ctx, query, args...)
		return err
	})
	return rows, err
}

// ScanRow runs a single-row query and scans the result into dest.
// Returns [sql.ErrNoRows] unwrapped so callers can translate it.
func (e *Executor) ScanRow(ctx context.Context, dest []any, query string, args ...any) error {
	return e.withRetry(ctx, func() error {
		return e.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
}

// withRetry runs op up to maxRetries times, sleeping retryDelay between
// attempts while the error stays transient.
func (e *Executor) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = op()
		if err == nil || !isTransient(err) {
			return err
		}
		if attempt >= e.maxRetries {
			return fmt.Errorf("%w: gave up after %d attempts: %v", shared.ErrQueryFailed, attempt, err)
		}

		e.logger.Warn("database busy, retrying", "attempt", attempt, "max", e.maxRetries, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.retryDelay):
		}
	}
}

// isTransient reports whether err is a SQLite busy or locked error, the only
// failures worth retrying. Constraint violations, syntax errors, and missing
// tables will not heal on a second attempt.
func isTransient(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}
