package postgres

import (
	"context"
	"database/sql"

	"github.com/orderable/orderable/orderable/storage"
)

// indexQuery lists index name, uniqueness and covered column for every
// index on a table visible through the connection's search_path. One row
// per (index, column); rows for one index are adjacent.
const indexQuery = `
SELECT i.relname, ix.indisunique, a.attname
FROM pg_class t
JOIN pg_index ix ON t.oid = ix.indrelid
JOIN pg_class i ON i.oid = ix.indexrelid
JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
WHERE t.relname = $1
  AND t.relkind = 'r'
  AND t.relnamespace::regnamespace::text = ANY(current_schemas(false))
ORDER BY i.relname, a.attnum`

// Indexes lists the indexes on a table from the postgres catalogs.
// Unlike sqlite, primary keys appear here as unique indexes.
func (a *Adapter) Indexes(ctx context.Context, db *sql.DB, table string) ([]storage.IndexInfo, error) {
	rows, err := db.QueryContext(ctx, indexQuery, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storage.IndexInfo
	for rows.Next() {
		var (
			name   string
			unique bool
			column string
		)
		if err := rows.Scan(&name, &unique, &column); err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && out[n-1].Name == name {
			out[n-1].Columns = append(out[n-1].Columns, column)
			continue
		}
		out = append(out, storage.IndexInfo{Name: name, Unique: unique, Columns: []string{column}})
	}
	return out, rows.Err()
}
