package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var tables = []string{
	"albums", "artists", "customers", "employees", "genres",
	"invoice_items", "invoices", "media_types",
	"playlist_track", "playlists", "tracks",
}

func tableMenu(db *sql.DB, in *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintln(out, "\nAvailable tables:")
		for i, table := range tables {
			fmt.Fprintf(out, "%d. %s\n", i+1, table)
		}
		fmt.Fprintf(out, "%d. Exit\n", len(tables)+1)

		choice, ok := ask(in, out, "Choose a table to manage: ")
		if !ok {
			return
		}

		if choice == strconv.Itoa(len(tables)+1) {
			return
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(tables) {
			fmt.Fprintln(out, "Invalid selection.")
			continue
		}
		manageTable(db, in, out, tables[n-1])
	}
}

func manageTable(db *sql.DB, in *bufio.Scanner, out io.Writer, table string) {
	for {
		fmt.Fprintf(out, "\n--- Managing Table: %s ---\n", table)
		fmt.Fprintln(out, "1. View Records")
		fmt.Fprintln(out, "2. Add Record")
		fmt.Fprintln(out, "3. Edit Record")
		fmt.Fprintln(out, "4. Delete Record")
		fmt.Fprintln(out, "5. Back to Table List")

		action, ok := ask(in, out, "Choose an action: ")
		if !ok {
			return
		}

		var err error
		switch action {
		case "1":
			viewRecords(db, out, table)
		case "2":
			err = addRecord(db, in, out, table)
		case "3":
			err = editRecord(db, in, out, table)
		case "4":
			err = deleteRecord(db, in, out, table)
		case "5":
			return
		default:
			fmt.Fprintln(out, "Invalid option.")
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// viewRecords reports its own failures so a broken table never kills the
// menu loop.
func viewRecords(db *sql.DB, out io.Writer, table string) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s LIMIT 20", table))
	if err != nil {
		fmt.Fprintf(out, "Error viewing %s: %v\n", table, err)
		return
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		fmt.Fprintf(out, "Error viewing %s: %v\n", table, err)
		return
	}
	fmt.Fprintln(out, strings.Join(columns, " | "))
	fmt.Fprintln(out, strings.Repeat("-", 50))

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			fmt.Fprintf(out, "Error viewing %s: %v\n", table, err)
			return
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = cellString(v)
		}
		fmt.Fprintln(out, strings.Join(cells, " | "))
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(out, "Error viewing %s: %v\n", table, err)
	}
}

// cellString renders a scanned value the way the console expects: text for
// blobs, NULL spelled out, everything else through fmt.
func cellString(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// insertColumns lists the table's columns minus the auto-increment primary
// key, in declaration order.
func insertColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var cid, notNull, pk int
		var name, ctype string
		var dflt any
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		if pk == 0 {
			cols = append(cols, name)
		}
	}
	return cols, rows.Err()
}

func addRecord(db *sql.DB, in *bufio.Scanner, out io.Writer, table string) error {
	fmt.Fprintf(out, "\nInsert into `%s`:\n", table)

	cols, err := insertColumns(db, table)
	if err != nil {
		return err
	}

	values := make([]string, 0, len(cols))
	for _, col := range cols {
		val, ok := ask(in, out, col+": ")
		if !ok {
			return nil
		}
		values = append(values, val)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ('%s')",
		table, strings.Join(cols, ", "), strings.Join(values, "', '"))
	fmt.Fprintf(out, "Executing: %s\n", query)
	_, err = db.Exec(query)
	return err
}

func editRecord(db *sql.DB, in *bufio.Scanner, out io.Writer, table string) error {
	condition, ok := ask(in, out, "Enter the primary key ID or condition to edit (e.g., 1 or ArtistId=1): ")
	if !ok {
		return nil
	}
	column, ok := ask(in, out, "Enter column to update: ")
	if !ok {
		return nil
	}
	value, ok := ask(in, out, "Enter new value: ")
	if !ok {
		return nil
	}

	query := fmt.Sprintf("UPDATE %s SET %s = '%s' WHERE %s", table, column, value, condition)
	fmt.Fprintf(out, "Executing: %s\n", query)
	_, err := db.Exec(query)
	return err
}

func deleteRecord(db *sql.DB, in *bufio.Scanner, out io.Writer, table string) error {
	condition, ok := ask(in, out, "Enter WHERE condition to delete (e.g., AlbumId=1 or 1=1): ")
	if !ok {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s", table, condition)
	fmt.Fprintf(out, "Executing: %s\n", query)
	_, err := db.Exec(query)
	return err
}
