package storage

import (
	"context"
	"database/sql"

	"github.com/orderable/orderable/orderable/storage/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Table names the relational surface a ranked collection lives on.
// Identifiers are validated by the facade before they reach an adapter.
type Table struct {
	Name        string
	IDColumn    string
	OrderColumn string
}

// Adapter abstracts database-specific operations
type Adapter interface {
	Backend() Backend
	PlaceholderStyle() sqlbuilder.PlaceholderStyle
	StoreID() string

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// VerifyTable probes that the table exposes the id and order columns.
	VerifyTable(ctx context.Context, db *sql.DB, t Table) error

	// Templates renders the statement set for one table.
	Templates(t Table) SQL

	// Indexes lists the indexes defined on a table, with uniqueness and
	// covered columns, for advisory introspection.
	Indexes(ctx context.Context, db *sql.DB, table string) ([]IndexInfo, error)
}

// SQL holds prepared SQL templates for the ranked-collection operations.
// Bind order is documented per statement.
type SQL struct {
	SelectOrderedAsc  string // -> (id, order) rows
	SelectOrderedDesc string // -> (id, order) rows
	MaxValue          string // -> COALESCE(MAX(order), 0)
	CountRows         string // -> COUNT(*)
	GetByID           string // args: id; -> (order)
	SetValue          string // args: order, id
	ShiftUp           string // args: lo, hi; order += 1 in [lo, hi]
	ShiftDown         string // args: lo, hi; order -= 1 in [lo, hi]
}

// IndexInfo describes one index on a table.
type IndexInfo struct {
	Name    string
	Unique  bool
	Columns []string
}

// Covers reports whether the index includes the named column.
func (ix IndexInfo) Covers(column string) bool {
	for _, c := range ix.Columns {
		if c == column {
			return true
		}
	}
	return false
}
