package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chinook/internal/formatter"
	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/prompt"
	"github.com/desertthunder/chinook/internal/repositories"
	"github.com/desertthunder/chinook/internal/shared"
)

// AlbumMenu drives the interactive album manager: listing, adding, editing,
// deleting and searching albums with every input validated before it reaches
// the database.
type AlbumMenu struct {
	console
	albums     *repositories.AlbumRepository
	artists    *repositories.ArtistRepository
	browser    *repositories.TableBrowser
	maxResults int
}

// AlbumMenuOpts contains optional configuration for [AlbumMenu].
type AlbumMenuOpts struct {
	Logger     *log.Logger
	Output     io.Writer
	MaxResults int // Listing cap offered when a table outgrows it (default: DefaultMaxResults)
}

// NewAlbumMenu builds a menu over the given repositories, defaulting any
// options left unset.
func NewAlbumMenu(prompter *prompt.Prompter, albums *repositories.AlbumRepository, artists *repositories.ArtistRepository, browser *repositories.TableBrowser, activity *repositories.ActivityRepository, opts AlbumMenuOpts) *AlbumMenu {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}

	return &AlbumMenu{
		console: console{
			prompter: prompter,
			output:   opts.Output,
			logger:   opts.Logger,
			activity: activity,
		},
		albums:     albums,
		artists:    artists,
		browser:    browser,
		maxResults: opts.MaxResults,
	}
}

// Run loops over the main menu until the user exits or cancels. Failures
// inside an operation are printed and the menu continues.
func (m *AlbumMenu) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.showMenu()

		choice, err := m.prompter.Choice("Choose an option (1-8): ", 1, 8)
		if err != nil {
			if errors.Is(err, shared.ErrCancelled) {
				m.write("Goodbye!")
				return nil
			}

			if errors.Is(err, shared.ErrRetriesExhausted) {
				continue
			}

			return err
		}

		switch choice {
		case 1:
			m.report(m.listAlbums(ctx))
		case 2:
			m.report(m.listArtists(ctx))
		case 3:
			m.report(m.addAlbum(ctx))
			m.prompter.Pause("Press Enter to continue...")
		case 4:
			m.report(m.editAlbum(ctx))
			m.prompter.Pause("Press Enter to continue...")
		case 5:
			m.report(m.deleteAlbum(ctx))
			m.prompter.Pause("Press Enter to continue...")
		case 6:
			m.report(m.searchAlbums(ctx))
		case 7:
			m.report(m.showStats(ctx))
		case 8:
			m.write("Goodbye!")
			return nil
		}
	}
}

func (m *AlbumMenu) showMenu() {
	m.write("")
	m.write("=== Chinook Album Manager ===")
	m.write("1. List all albums")
	m.write("2. List all artists")
	m.write("3. Add new album")
	m.write("4. Edit album")
	m.write("5. Delete album")
	m.write("6. Search albums")
	m.write("7. View database statistics")
	m.write("8. Exit")
}

func (m *AlbumMenu) listAlbums(ctx context.Context) error {
	total, err := m.albums.Count(ctx)
	if err != nil {
		return err
	}

	if total == 0 {
		m.write("No albums found.")
		return nil
	}

	m.write("")
	m.write("Sort options:")
	m.write("1. Album ID (default)")
	m.write("2. Title (A-Z)")
	m.write("3. Artist name (A-Z)")
	m.write("4. Album ID (descending)")

	choice, err := m.prompter.ChoiceDefault("Choose sort order (1-4, default 1): ", 1, 4, 1)
	if err != nil {
		return err
	}

	sorts := []repositories.AlbumSort{
		repositories.AlbumsByID,
		repositories.AlbumsByTitle,
		repositories.AlbumsByArtist,
		repositories.AlbumsByIDDesc,
	}

	limit, err := m.askLimit("albums", total, m.maxResults)
	if err != nil {
		return err
	}

	albums, err := m.albums.List(ctx, sorts[choice-1], limit)
	if err != nil {
		return err
	}

	m.write("%s", formatter.RenderTable(models.DumpAlbums(albums), formatter.DefaultCellWidth))
	m.write("Showing %d of %d albums.", len(albums), total)
	return nil
}

func (m *AlbumMenu) listArtists(ctx context.Context) error {
	total, err := m.artists.Count(ctx)
	if err != nil {
		return err
	}

	if total == 0 {
		m.write("No artists found.")
		return nil
	}

	m.write("")
	m.write("Sort options:")
	m.write("1. Name (A-Z, default)")
	m.write("2. Artist ID (ascending)")
	m.write("3. Artist ID (descending)")

	choice, err := m.prompter.ChoiceDefault("Choose sort order (1-3, default 1): ", 1, 3, 1)
	if err != nil {
		return err
	}

	sorts := []repositories.ArtistSort{
		repositories.ArtistsByName,
		repositories.ArtistsByID,
		repositories.ArtistsByIDDesc,
	}

	limit, err := m.askLimit("artists", total, m.maxResults)
	if err != nil {
		return err
	}

	artists, err := m.artists.List(ctx, sorts[choice-1], limit)
	if err != nil {
		return err
	}

	m.write("%s", formatter.RenderTable(models.DumpArtists(artists), formatter.DefaultCellWidth))
	m.write("Showing %d of %d artists.", len(artists), total)
	return nil
}

func (m *AlbumMenu) addAlbum(ctx context.Context) error {
	m.write("")
	m.write("--- Add New Album ---")

	title, err := m.prompter.String("Enter album title: ", "album title", maxTitleLength)
	if err != nil {
		return err
	}

	artistID, err := m.prompter.PositiveInt("Enter artist ID: ", "artist ID")
	if err != nil {
		return err
	}

	exists, err := m.artists.Exists(ctx, artistID)
	if err != nil {
		return err
	}

	if !exists {
		m.write("Artist ID %d does not exist. Use option 2 to list artists.", artistID)
		return nil
	}

	id, err := m.albums.Create(ctx, title, artistID)
	if err != nil {
		return err
	}

	m.write("Album %q added with ID %d.", title, id)
	m.recordActivity(ctx, models.ActionInsert, "albums", fmt.Sprintf("added album %d", id))
	return nil
}

func (m *AlbumMenu) editAlbum(ctx context.Context) error {
	m.write("")
	m.write("--- Edit Album ---")

	id, err := m.prompter.PositiveInt("Enter album ID to edit: ", "album ID")
	if err != nil {
		return err
	}

	album, err := m.albums.Get(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		m.write("Album ID %d does not exist. Use option 1 to list albums.", id)
		return nil
	}

	if err != nil {
		return err
	}

	m.write("Current album: %q (Artist ID: %d)", album.Title, album.ArtistID)

	title, set, err := m.prompter.OptionalString("Enter new title (or press Enter to keep current): ", "album title", maxTitleLength)
	if err != nil {
		return err
	}

	if !set {
		title = album.Title
	}

	artistID, set, err := m.prompter.OptionalPositiveInt("Enter new artist ID (or press Enter to keep current): ", "artist ID")
	if err != nil {
		return err
	}

	if !set {
		artistID = album.ArtistID
	} else {
		exists, err := m.artists.Exists(ctx, artistID)
		if err != nil {
			return err
		}

		if !exists {
			m.write("Artist ID %d does not exist. Use option 2 to list artists.", artistID)
			return nil
		}
	}

	if err := m.albums.Update(ctx, id, title, artistID); err != nil {
		return err
	}

	m.write("Successfully updated album ID %d.", id)
	m.recordActivity(ctx, models.ActionUpdate, "albums", fmt.Sprintf("updated album %d", id))
	return nil
}

func (m *AlbumMenu) deleteAlbum(ctx context.Context) error {
	m.write("")
	m.write("--- Delete Album ---")

	id, err := m.prompter.PositiveInt("Enter album ID to delete: ", "album ID")
	if err != nil {
		return err
	}

	album, err := m.albums.Get(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		m.write("Album ID %d does not exist. Use option 1 to list albums.", id)
		return nil
	}

	if err != nil {
		return err
	}

	label := fmt.Sprintf("Are you sure you want to delete album %q (ID: %d)? (yes/no): ", album.Title, album.ID)

	confirmed, err := m.prompter.Confirm(label)
	if err != nil {
		return err
	}

	if !confirmed {
		m.write("Deletion cancelled.")
		return nil
	}

	if err := m.albums.Delete(ctx, id); err != nil {
		return err
	}

	m.write("Successfully deleted album ID %d.", id)
	m.recordActivity(ctx, models.ActionDelete, "albums", fmt.Sprintf("deleted album %d", id))
	return nil
}

func (m *AlbumMenu) searchAlbums(ctx context.Context) error {
	m.write("")
	m.write("--- Search Albums ---")

	term, err := m.prompter.String("Enter search term (album title or artist name): ", "search term", maxSearchLength)
	if err != nil {
		return err
	}

	albums, err := m.albums.Search(ctx, term, m.maxResults)
	if err != nil {
		return err
	}

	if len(albums) == 0 {
		m.write("No albums found matching %q.", term)
		return nil
	}

	m.write("Search results for %q:", term)
	m.write("%s", formatter.RenderTable(models.DumpAlbums(albums), formatter.DefaultCellWidth))
	m.write("Found %d album(s).", len(albums))
	return nil
}

func (m *AlbumMenu) showStats(ctx context.Context) error {
	counts, err := m.browser.Counts(ctx)
	if err != nil {
		return err
	}

	m.write("")
	m.write("--- Database Statistics ---")
	m.write("%s", formatter.RenderCounts(counts))
	return nil
}
