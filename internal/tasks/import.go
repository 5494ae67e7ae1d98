package tasks

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
	"github.com/desertthunder/chinook/internal/validate"
	"golang.org/x/time/rate"
)

// DefaultRowsPerSecond paces imports so a bulk load cannot starve
// interactive sessions sharing the database file.
const DefaultRowsPerSecond = 25

// ImportOpts contains configuration for album imports.
type ImportOpts struct {
	RowsPerSecond  int // Database writes per second (default: 25)
	MaxTitleLength int // Rune budget per title (default: validate.DefaultMaxLength)
}

// albumRow is one parsed CSV record with its source position.
type albumRow struct {
	line     int
	title    string
	artistID string
}

// ImportAlbums reads album rows from src in CSV form and inserts each valid
// row, pacing writes with a rate limiter.
//
// The source must carry a "Title,ArtistId" header. Rows fail individually: a
// bad title, an unknown artist, or a database error skips that row and the
// run continues. The returned result lists every skipped line. A single
// summary entry lands in the activity log when at least one row imported.
func (e *ImportEngine) ImportAlbums(ctx context.Context, progress chan<- ProgressUpdate, src io.Reader, opts ImportOpts) (*ImportResult, error) {
	if e.albums == nil || e.artists == nil {
		return nil, fmt.Errorf("import engine missing repositories")
	}
	if opts.RowsPerSecond <= 0 {
		opts.RowsPerSecond = DefaultRowsPerSecond
	}
	if opts.MaxTitleLength <= 0 {
		opts.MaxTitleLength = validate.DefaultMaxLength
	}

	e.sendProgress(progress, parsingSourceUpdate())

	rows, failures, err := parseAlbumRows(src)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Total:    len(rows) + len(failures),
		Failures: failures,
	}
	e.sendProgress(progress, parsedSourceUpdate(result.Total))

	limiter := rate.NewLimiter(rate.Limit(opts.RowsPerSecond), 1)

	for i, row := range rows {
		step := i + 1
		if err := limiter.Wait(ctx); err != nil {
			result.Skipped = result.Total - result.Imported
			return result, err
		}

		e.sendProgress(progress, importingRowUpdate(step, len(rows), row.title))

		id, err := e.importRow(ctx, row, opts.MaxTitleLength)
		if err != nil {
			result.Failures = append(result.Failures, RowError{Line: row.line, Err: err})
			e.sendProgress(progress, skippedRowUpdate(step, len(rows), row.line, err))
			continue
		}

		result.Imported++
		e.sendProgress(progress, importedRowUpdate(step, len(rows), row.title, id))
	}

	result.Skipped = result.Total - result.Imported
	e.sendProgress(progress, summaryUpdate(result.Imported, result.Skipped))

	if result.Imported > 0 && e.activity != nil {
		detail := fmt.Sprintf("imported %d albums", result.Imported)
		if err := e.activity.Record(ctx, models.ActionImport, "albums", detail); err != nil {
			return result, fmt.Errorf("import completed but failed to record activity: %w", err)
		}
	}

	return result, nil
}

// importRow validates one row and writes it. The artist check runs before the
// insert so a typoed ID reads as "artist not found" rather than a bare
// constraint failure.
func (e *ImportEngine) importRow(ctx context.Context, row albumRow, maxTitleLength int) (int64, error) {
	title, err := validate.String(row.title, "title", maxTitleLength)
	if err != nil {
		return 0, err
	}

	artistID, err := validate.PositiveInt(row.artistID, "artist ID")
	if err != nil {
		return 0, err
	}

	exists, err := e.artists.Exists(ctx, artistID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: artist %d", shared.ErrNotFound, artistID)
	}

	return e.albums.Create(ctx, title, artistID)
}

// parseAlbumRows reads every record from src. Malformed records become
// failures rather than aborting the parse, the reader resynchronizes on the
// next record.
func parseAlbumRows(src io.Reader) ([]albumRow, []RowError, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: source is empty", shared.ErrInvalidArgument)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) != 2 || !strings.EqualFold(header[0], "Title") || !strings.EqualFold(header[1], "ArtistId") {
		return nil, nil, fmt.Errorf("%w: expected header Title,ArtistId got %s", shared.ErrInvalidArgument, strings.Join(header, ","))
	}

	var (
		rows     []albumRow
		failures []RowError
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				failures = append(failures, RowError{Line: parseErr.Line, Err: err})
				continue
			}
			return nil, nil, fmt.Errorf("failed to read source: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, albumRow{line: line, title: record[0], artistID: record[1]})
	}

	return rows, failures, nil
}
