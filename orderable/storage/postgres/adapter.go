package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/orderable/orderable/orderable/storage"
	"github.com/orderable/orderable/orderable/storage/sqlbuilder"
)

type Adapter struct {
	DSN    string
	Schema string // optional; pinned via search_path when set
}

func New(dsn, schema string) *Adapter {
	return &Adapter{DSN: dsn, Schema: schema}
}

func (a *Adapter) Backend() storage.Backend { return storage.BackendPostgres }

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle { return sqlbuilder.PlaceholderDollar }

func (a *Adapter) StoreID() string {
	if a.Schema != "" {
		return "postgres:" + a.Schema
	}
	return "postgres"
}

func (a *Adapter) Close() error { return nil }

func (a *Adapter) Templates(t storage.Table) storage.SQL {
	return storage.Render(t, a.PlaceholderStyle())
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(a.DSN)
	if err != nil {
		return nil, err
	}
	if a.Schema != "" {
		if !sqlbuilder.ValidIdent(a.Schema) {
			return nil, fmt.Errorf("invalid postgres schema name %q", a.Schema)
		}
		if cfg.RuntimeParams == nil {
			cfg.RuntimeParams = make(map[string]string)
		}
		// public stays as a fallback for built-ins; schema is first.
		cfg.RuntimeParams["search_path"] = fmt.Sprintf("%s,public", sqlbuilder.QuoteIdent(a.Schema))
	}
	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Adapter) VerifyTable(ctx context.Context, db *sql.DB, t storage.Table) error {
	probe := "SELECT " + sqlbuilder.QuoteIdent(t.IDColumn) + ", " + sqlbuilder.QuoteIdent(t.OrderColumn) +
		" FROM " + sqlbuilder.QuoteIdent(t.Name) + " LIMIT 0"
	rows, err := db.QueryContext(ctx, probe)
	if err != nil {
		return err
	}
	defer rows.Close()
	return rows.Err()
}
