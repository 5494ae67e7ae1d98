// package tasks implements bulk operations against the Chinook database.
//
// The core abstraction is ImportEngine, which validates and loads album rows
// from CSV sources. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"fmt"

	"github.com/desertthunder/chinook/internal/repositories"
)

// RowError pairs a source line number with the reason the row was skipped.
type RowError struct {
	Line int   // 1-based line in the source file
	Err  error // validation or database failure
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ImportResult summarizes one import run. Total counts every data row in the
// source, imported and skipped rows always sum to it.
type ImportResult struct {
	Total    int        // Data rows found in the source
	Imported int        // Rows written to the database
	Skipped  int        // Rows rejected by validation or the database
	Failures []RowError // One entry per skipped row
}

// ImportEngine loads album rows into the database with validation and rate
// limiting. Contains dependencies on the album, artist, and activity
// repositories.
type ImportEngine struct {
	albums   *repositories.AlbumRepository
	artists  *repositories.ArtistRepository
	activity *repositories.ActivityRepository
}

// NewImportEngine creates a new ImportEngine with the provided repositories.
func NewImportEngine(albums *repositories.AlbumRepository, artists *repositories.ArtistRepository, activity *repositories.ActivityRepository) *ImportEngine {
	return &ImportEngine{
		albums:   albums,
		artists:  artists,
		activity: activity,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ImportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
