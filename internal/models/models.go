// package models defines the data model for the Chinook database tools
package models

import (
	"slices"
	"strconv"
	"time"
)

// Tables lists every Chinook table the generic browser is allowed to touch,
// in the order the browse menu presents them. Table names cannot be bound as
// SQL parameters, so membership here is what licenses interpolating one into
// a statement.
var Tables = []string{
	"albums",
	"artists",
	"customers",
	"employees",
	"genres",
	"invoice_items",
	"invoices",
	"media_types",
	"playlist_track",
	"playlists",
	"tracks",
}

// IsTable reports whether name is a known Chinook table.
func IsTable(name string) bool {
	return slices.Contains(Tables, name)
}

// Actions recorded in the activity log. Every committed write through the
// fortified tools lands here; reads and cancelled operations do not.
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionImport = "import"
)

// Album is an albums row joined with the owning artist's name.
type Album struct {
	ID       int    `json:"id"`        // AlbumId
	Title    string `json:"title"`     // Title
	ArtistID int    `json:"artist_id"` // ArtistId
	Artist   string `json:"artist"`    // artists.Name via join
}

// Artist is an artists row.
type Artist struct {
	ID   int    `json:"id"`   // ArtistId
	Name string `json:"name"` // Name
}

// Column describes one column of a Chinook table as reported by
// PRAGMA table_info.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// TableDump holds a generic result set with every value rendered as text,
// ready for table formatting or export.
type TableDump struct {
	Table   string
	Columns []string
	Rows    [][]string
}

// TableCount pairs a table name with its row count.
type TableCount struct {
	Table string `json:"table"`
	Count int    `json:"count"`
}

// ActivityEntry is an activity_log row describing one committed write.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	TableName string    `json:"table"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// DumpAlbums shapes albums into a table dump for rendering or export.
func DumpAlbums(albums []Album) *TableDump {
	rows := make([][]string, 0, len(albums))
	for _, album := range albums {
		rows = append(rows, []string{strconv.Itoa(album.ID), album.Title, album.Artist})
	}
	return &TableDump{Table: "albums", Columns: []string{"ID", "Title", "Artist"}, Rows: rows}
}

// DumpArtists shapes artists into a table dump.
func DumpArtists(artists []Artist) *TableDump {
	rows := make([][]string, 0, len(artists))
	for _, artist := range artists {
		rows = append(rows, []string{strconv.Itoa(artist.ID), artist.Name})
	}
	return &TableDump{Table: "artists", Columns: []string{"ID", "Name"}, Rows: rows}
}

// DumpActivity shapes activity log entries into a table dump, newest first as
// the repository returns them.
func DumpActivity(entries []ActivityEntry) *TableDump {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.Action,
			entry.TableName,
			entry.Detail,
		})
	}
	return &TableDump{Table: "activity_log", Columns: []string{"Time", "Action", "Table", "Detail"}, Rows: rows}
}
