// chinook-naive is the unguarded generation of the Chinook console tools,
// kept runnable as the before half of the security story the fortified
// chinook binary tells. It splices raw input into SQL strings, echoes each
// statement, and executes whatever results. Do not point it at a database
// you care about.
package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

const dbPath = "chinook.db"

func main() {
	mode := "albums"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", dbPath, err)
		os.Exit(1)
	}
	defer db.Close()

	in := bufio.NewScanner(os.Stdin)

	switch mode {
	case "albums":
		albumMenu(db, in, os.Stdout)
	case "tables":
		tableMenu(db, in, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "usage: chinook-naive [albums|tables]\n")
		os.Exit(2)
	}
}

// ask prints a prompt and reads one line. ok is false once input is closed.
func ask(in *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !in.Scan() {
		return "", false
	}
	return in.Text(), true
}
