package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// ArtistSort selects the ordering for artist listings.
type ArtistSort int

const (
	ArtistsByID ArtistSort = iota
	ArtistsByName
	ArtistsByIDDesc
)

func (s ArtistSort) orderBy() string {
	switch s {
	case ArtistsByName:
		return "Name COLLATE NOCASE ASC"
	case ArtistsByIDDesc:
		return "ArtistId DESC"
	default:
		return "ArtistId ASC"
	}
}

// String describes the sort for menu display.
func (s ArtistSort) String() string {
	switch s {
	case ArtistsByName:
		return "Name (A-Z)"
	case ArtistsByIDDesc:
		return "Newest first"
	default:
		return "Artist ID"
	}
}

// ArtistRepository reads the artists table. Artists are created through the
// generic browser rather than a dedicated flow, so this repository only
// answers the lookups the album menu needs.
type ArtistRepository struct {
	exec *Executor
}

// NewArtistRepository creates a new ArtistRepository using the given executor
func NewArtistRepository(exec *Executor) *ArtistRepository {
	return &ArtistRepository{exec: exec}
}

// Count returns the number of artists.
func (r *ArtistRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.exec.ScanRow(ctx, []any{&count}, "SELECT COUNT(*) FROM artists"); err != nil {
		return 0, fmt.Errorf("failed to count artists: %w", err)
	}
	return count, nil
}

// List retrieves artists in the given order. A limit above zero caps the
// result set.
func (r *ArtistRepository) List(ctx context.Context, sort ArtistSort, limit int) ([]models.Artist, error) {
	query := "SELECT ArtistId, COALESCE(Name, '') FROM artists ORDER BY " + sort.orderBy()

	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(&artist.ID, &artist.Name); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

// Get retrieves a single artist.
// Returns [shared.ErrNotFound] when no artist has the given ID.
func (r *ArtistRepository) Get(ctx context.Context, id int) (*models.Artist, error) {
	var artist models.Artist
	err := r.exec.ScanRow(ctx, []any{&artist.ID, &artist.Name},
		"SELECT ArtistId, COALESCE(Name, '') FROM artists WHERE ArtistId = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: artist %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist %d: %w", id, err)
	}

	return &artist, nil
}

// Exists reports whether an artist with the given ID is present. The album
// menu calls this before any insert or update that references the artist.
func (r *ArtistRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.exec.ScanRow(ctx, []any{&exists}, "SELECT EXISTS(SELECT 1 FROM artists WHERE ArtistId = ?)", id)
	if err != nil {
		return false, fmt.Errorf("failed to check artist %d: %w", id, err)
	}
	return exists, nil
}
