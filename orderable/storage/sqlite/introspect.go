package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orderable/orderable/orderable/storage"
	"github.com/orderable/orderable/orderable/storage/sqlbuilder"
)

// Indexes lists the indexes on a table via PRAGMA index_list/index_info.
// Implicit rowid primary keys do not appear; INTEGER PRIMARY KEY uniqueness
// is a rowid property, not an index, so it is not reported here.
func (a *Adapter) Indexes(ctx context.Context, db *sql.DB, table string) ([]storage.IndexInfo, error) {
	if !sqlbuilder.ValidIdent(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := db.QueryContext(ctx, "PRAGMA index_list("+sqlbuilder.QuoteIdent(table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storage.IndexInfo
	for rows.Next() {
		var (
			seq     int
			name    string
			unique  int
			origin  string
			partial int
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return nil, err
		}
		out = append(out, storage.IndexInfo{Name: name, Unique: unique != 0})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		cols, err := indexColumns(ctx, db, out[i].Name)
		if err != nil {
			return nil, err
		}
		out[i].Columns = cols
	}
	return out, nil
}

func indexColumns(ctx context.Context, db *sql.DB, index string) ([]string, error) {
	if !sqlbuilder.ValidIdent(index) {
		// Auto-created indexes are named sqlite_autoindex_<table>_<n>,
		// which the identifier check accepts; anything else is refused.
		return nil, fmt.Errorf("invalid index name %q", index)
	}
	rows, err := db.QueryContext(ctx, "PRAGMA index_info("+sqlbuilder.QuoteIdent(index)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			seqno int
			cid   int
			name  sql.NullString
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, err
		}
		if name.Valid {
			cols = append(cols, name.String)
		}
	}
	return cols, rows.Err()
}
