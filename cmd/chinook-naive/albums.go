package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func albumMenu(db *sql.DB, in *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintln(out, "\n--- Album Management Menu (Naive Version) ---")
		fmt.Fprintln(out, "1. List Albums")
		fmt.Fprintln(out, "2. List Artists")
		fmt.Fprintln(out, "3. Add Album")
		fmt.Fprintln(out, "4. Edit Album")
		fmt.Fprintln(out, "5. Delete Album")
		fmt.Fprintln(out, "6. Exit")

		choice, ok := ask(in, out, "Choose an option: ")
		if !ok {
			return
		}

		var err error
		switch choice {
		case "1":
			err = listAlbums(db, out)
		case "2":
			err = listArtists(db, out)
		case "3":
			err = addAlbum(db, in, out)
		case "4":
			err = editAlbum(db, in, out)
		case "5":
			err = deleteAlbum(db, in, out)
		case "6":
			return
		default:
			fmt.Fprintln(out, "Invalid choice.")
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func listAlbums(db *sql.DB, out io.Writer) error {
	fmt.Fprintln(out, "\n=== Albums ===")
	rows, err := db.Query(`
		SELECT albums.AlbumId, albums.Title, artists.Name
		FROM albums
		JOIN artists ON albums.ArtistId = artists.ArtistId
		ORDER BY albums.AlbumId`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var title, artist string
		if err := rows.Scan(&id, &title, &artist); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d | %s | %s\n", id, title, artist)
	}
	return rows.Err()
}

func listArtists(db *sql.DB, out io.Writer) error {
	fmt.Fprintln(out, "\n=== Artists ===")
	rows, err := db.Query("SELECT ArtistId, Name FROM artists ORDER BY ArtistId")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d | %s\n", id, name)
	}
	return rows.Err()
}

func addAlbum(db *sql.DB, in *bufio.Scanner, out io.Writer) error {
	title, ok := ask(in, out, "Enter album title: ")
	if !ok {
		return nil
	}
	artistID, ok := ask(in, out, "Enter artist ID: ")
	if !ok {
		return nil
	}

	query := fmt.Sprintf("INSERT INTO albums (Title, ArtistId) VALUES ('%s', %s)", title, artistID)
	fmt.Fprintf(out, "Executing: %s\n", query)
	_, err := db.Exec(query)
	return err
}

// editAlbum is the odd one out: it digit-checks both IDs and binds every
// value instead of splicing them into the statement.
func editAlbum(db *sql.DB, in *bufio.Scanner, out io.Writer) error {
	albumID, ok := ask(in, out, "Enter AlbumId to edit: ")
	if !ok {
		return nil
	}
	newTitle, ok := ask(in, out, "New album title: ")
	if !ok {
		return nil
	}
	newArtistID, ok := ask(in, out, "New artist ID: ")
	if !ok {
		return nil
	}

	albumID = strings.TrimSpace(albumID)
	newTitle = strings.TrimSpace(newTitle)
	newArtistID = strings.TrimSpace(newArtistID)

	if !isDigits(albumID) || !isDigits(newArtistID) || newTitle == "" {
		fmt.Fprintln(out, "Invalid input. Ensure IDs are numbers and title is not blank.")
		return nil
	}
	id, _ := strconv.Atoi(albumID)
	artistID, _ := strconv.Atoi(newArtistID)

	query := "UPDATE albums SET Title = ?, ArtistId = ? WHERE AlbumId = ?"
	if _, err := db.Exec(query, newTitle, artistID, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "Executing: %s with values (%s, %s, %s)\n", query, newTitle, newArtistID, albumID)
	return nil
}

func deleteAlbum(db *sql.DB, in *bufio.Scanner, out io.Writer) error {
	albumID, ok := ask(in, out, "Enter AlbumId to delete: ")
	if !ok {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM albums WHERE AlbumId = %s", albumID)
	fmt.Fprintf(out, "Executing: %s\n", query)
	_, err := db.Exec(query)
	return err
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
