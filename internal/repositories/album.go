package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// AlbumSort selects the ordering for album listings.
type AlbumSort int

const (
	AlbumsByID AlbumSort = iota
	AlbumsByTitle
	AlbumsByArtist
	AlbumsByIDDesc
)

// orderBy returns the ORDER BY expression for the sort. The expressions are
// fixed strings chosen by menu number, never user text.
func (s AlbumSort) orderBy() string {
	switch s {
	case AlbumsByTitle:
		return "albums.Title COLLATE NOCASE ASC"
	case AlbumsByArtist:
		return "artists.Name COLLATE NOCASE ASC, albums.Title COLLATE NOCASE ASC"
	case AlbumsByIDDesc:
		return "albums.AlbumId DESC"
	default:
		return "albums.AlbumId ASC"
	}
}

// String describes the sort for menu display.
func (s AlbumSort) String() string {
	switch s {
	case AlbumsByTitle:
		return "Title (A-Z)"
	case AlbumsByArtist:
		return "Artist name (A-Z)"
	case AlbumsByIDDesc:
		return "Newest first"
	default:
		return "Album ID"
	}
}

// AlbumRepository reads and writes the albums table. Every statement is
// parameterized; titles and IDs travel as bound arguments, not SQL text.
type AlbumRepository struct {
	exec *Executor
}

// NewAlbumRepository creates a new AlbumRepository using the given executor
func NewAlbumRepository(exec *Executor) *AlbumRepository {
	return &AlbumRepository{exec: exec}
}

// Count returns the number of albums.
func (r *AlbumRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.exec.ScanRow(ctx, []any{&count}, "SELECT COUNT(*) FROM albums"); err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	return count, nil
}

// List retrieves albums joined with their artist names in the given order.
// A limit above zero caps the result set.
func (r *AlbumRepository) List(ctx context.Context, sort AlbumSort, limit int) ([]models.Album, error) {
	query := `
		SELECT albums.AlbumId, albums.Title, albums.ArtistId, artists.Name
		FROM albums
		JOIN artists ON artists.ArtistId = albums.ArtistId
		ORDER BY ` + sort.orderBy()

	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	return scanAlbums(rows)
}

// Get retrieves a single album with its artist name.
// Returns [shared.ErrNotFound] when no album has the given ID.
func (r *AlbumRepository) Get(ctx context.Context, id int) (*models.Album, error) {
	query := `
		SELECT albums.AlbumId, albums.Title, albums.ArtistId, artists.Name
		FROM albums
		JOIN artists ON artists.ArtistId = albums.ArtistId
		WHERE albums.AlbumId = ?
	`

	var album models.Album
	err := r.exec.ScanRow(ctx, []any{&album.ID, &album.Title, &album.ArtistID, &album.Artist}, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: album %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get album %d: %w", id, err)
	}

	return &album, nil
}

// Exists reports whether an album with the given ID is present.
func (r *AlbumRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.exec.ScanRow(ctx, []any{&exists}, "SELECT EXISTS(SELECT 1 FROM albums WHERE AlbumId = ?)", id)
	if err != nil {
		return false, fmt.Errorf("failed to check album %d: %w", id, err)
	}
	return exists, nil
}

// Search finds albums whose title or artist name contains term,
// case-insensitively. LIKE metacharacters in term match literally, so a
// search for "100%" only finds titles containing that text.
func (r *AlbumRepository) Search(ctx context.Context, term string, limit int) ([]models.Album, error) {
	pattern := "%" + escapeLike(term) + "%"
	query := `
		SELECT albums.AlbumId, albums.Title, albums.ArtistId, artists.Name
		FROM albums
		JOIN artists ON artists.ArtistId = albums.ArtistId
		WHERE albums.Title LIKE ? ESCAPE '\' OR artists.Name LIKE ? ESCAPE '\'
		ORDER BY albums.AlbumId ASC
	`

	args := []any{pattern, pattern}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search albums: %w", err)
	}
	defer rows.Close()

	return scanAlbums(rows)
}

// Create inserts a new album and returns its generated ID. The caller is
// expected to have verified the artist exists; with foreign keys on, a stale
// artist ID still fails here rather than inserting an orphan.
func (r *AlbumRepository) Create(ctx context.Context, title string, artistID int) (int64, error) {
	result, err := r.exec.Exec(ctx, "INSERT INTO albums (Title, ArtistId) VALUES (?, ?)", title, artistID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert album: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted album ID: %w", err)
	}

	return id, nil
}

// Update sets a new title and artist for an existing album.
// Returns [shared.ErrNotFound] when no album has the given ID.
func (r *AlbumRepository) Update(ctx context.Context, id int, title string, artistID int) error {
	result, err := r.exec.Exec(ctx, "UPDATE albums SET Title = ?, ArtistId = ? WHERE AlbumId = ?", title, artistID, id)
	if err != nil {
		return fmt.Errorf("failed to update album %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: album %d", shared.ErrNotFound, id)
	}

	return nil
}

// Delete removes an album by ID.
// Returns [shared.ErrNotFound] when no album has the given ID.
func (r *AlbumRepository) Delete(ctx context.Context, id int) error {
	result, err := r.exec.Exec(ctx, "DELETE FROM albums WHERE AlbumId = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete album %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: album %d", shared.ErrNotFound, id)
	}

	return nil
}

// scanAlbums drains rows into album values.
func scanAlbums(rows *sql.Rows) ([]models.Album, error) {
	var albums []models.Album
	for rows.Next() {
		var album models.Album
		if err := rows.Scan(&album.ID, &album.Title, &album.ArtistID, &album.Artist); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, album)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return albums, nil
}

// escapeLike escapes the LIKE wildcards and the escape character itself so a
// user-supplied term matches literally inside a LIKE ... ESCAPE '\' clause.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
