package main

import (
	"os"

	"github.com/orderable/orderable/internal/cli"

	// Register both sqlite drivers; --sqlite-driver selects between them.
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
