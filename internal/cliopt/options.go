package cliopt

import "flag"

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Backend      string
	SQLitePath   string
	SQLiteDriver string
	PostgresDSN  string
	PGSchema     string

	Table       string
	IDColumn    string
	OrderColumn string

	Format  string
	Verbose bool
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Backend:      "sqlite",
		SQLiteDriver: "sqlite",
	}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres")

	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "sqlite .db file path")
	fs.StringVar(&g.SQLiteDriver, "sqlite-driver", g.SQLiteDriver, "sqlite driver: sqlite (pure Go) or sqlite3 (cgo)")

	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN")
	fs.StringVar(&g.PGSchema, "pg-schema", g.PGSchema, "postgres schema (optional)")

	fs.StringVar(&g.Table, "table", g.Table, "table holding the ranked collection (required)")
	fs.StringVar(&g.Table, "t", g.Table, "table holding the ranked collection (required)")
	fs.StringVar(&g.IDColumn, "id-col", g.IDColumn, "id column (default: id)")
	fs.StringVar(&g.OrderColumn, "order-col", g.OrderColumn, "ordering column (default: display_order)")

	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|json")
	fs.BoolVar(&g.Verbose, "verbose", g.Verbose, "log operations to stderr")
}
