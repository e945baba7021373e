package cliutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/orderable/orderable/internal/cliopt"
	"github.com/orderable/orderable/orderable"
	"github.com/orderable/orderable/orderable/storage"
	"github.com/orderable/orderable/orderable/storage/postgres"
	"github.com/orderable/orderable/orderable/storage/sqlite"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// Adapter builds the storage adapter selected by the global flags.
func Adapter(g cliopt.GlobalOptions) (storage.Adapter, error) {
	switch g.Backend {
	case "sqlite":
		if g.SQLitePath == "" {
			return nil, fmt.Errorf("--sqlite-path required for sqlite backend")
		}
		return sqlite.NewWithDriver(g.SQLitePath, g.SQLiteDriver), nil
	case "postgres", "pg":
		if g.PostgresDSN == "" {
			return nil, fmt.Errorf("--pg-dsn required for postgres backend")
		}
		return postgres.New(g.PostgresDSN, g.PGSchema), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", g.Backend)
	}
}

// OpenList opens the ranked collection named by the global flags.
func OpenList(ctx context.Context, g cliopt.GlobalOptions) (*orderable.List, error) {
	adapter, err := Adapter(g)
	if err != nil {
		return nil, err
	}
	if g.Table == "" {
		return nil, fmt.Errorf("--table required")
	}

	opts := orderable.DefaultOptions()
	if g.Verbose {
		opts.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}

	spec := orderable.Spec{
		Table:       g.Table,
		IDColumn:    g.IDColumn,
		OrderColumn: g.OrderColumn,
	}
	return orderable.New(ctx, adapter, spec, opts)
}
