// Package orderable attaches ordering semantics to rows of a relational
// table: ordered retrieval, next-position allocation, and transactional
// reordering that never transiently violates a unique constraint on the
// ordering column.
package orderable

import (
	"context"
	"database/sql"

	"github.com/orderable/orderable/orderable/ops"
	"github.com/orderable/orderable/orderable/storage"
	"github.com/orderable/orderable/orderable/storage/sqlbuilder"
)

// List is an open ranked collection: one table, one ordering column.
type List struct {
	adapter storage.Adapter
	db      *sql.DB
	spec    Spec
	sqlt    storage.SQL
	opts    Options
}

// New connects through the adapter and binds the behavior to the table the
// spec names. The table itself is the caller's; New only probes that the
// id and ordering columns exist.
func New(ctx context.Context, adapter storage.Adapter, spec Spec, opts Options) (*List, error) {
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}

	t := spec.AsStorageTable()
	if err := adapter.VerifyTable(ctx, db, t); err != nil {
		db.Close()
		return nil, Wrap(ErrSpec, "probe table "+spec.Table, err)
	}

	return &List{
		adapter: adapter,
		db:      db,
		spec:    spec,
		sqlt:    adapter.Templates(t),
		opts:    opts,
	}, nil
}

// Close closes the database handle.
func (l *List) Close() error {
	if l.db != nil {
		if err := l.db.Close(); err != nil {
			return Wrap(ErrIO, "close database", err)
		}
	}
	return l.adapter.Close()
}

// DB exposes the underlying handle for callers that manage rows directly.
func (l *List) DB() *sql.DB {
	return l.db
}

// Spec returns the collection's configuration with defaults applied.
func (l *List) Spec() Spec {
	return l.spec
}

// Ordered returns all records sorted ascending by the ordering column.
func (l *List) Ordered(ctx context.Context) ([]Record, error) {
	return l.selectRecords(ctx, l.sqlt.SelectOrderedAsc)
}

// OrderedDesc returns all records sorted descending by the ordering column.
func (l *List) OrderedDesc(ctx context.Context) ([]Record, error) {
	return l.selectRecords(ctx, l.sqlt.SelectOrderedDesc)
}

func (l *List) selectRecords(ctx context.Context, query string) ([]Record, error) {
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, Wrap(ErrSQL, "select ordered", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Position); err != nil {
			return nil, Wrap(ErrSQL, "scan record", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "iterate records", err)
	}
	return out, nil
}

// Get returns the record snapshot for one id.
func (l *List) Get(ctx context.Context, id int64) (Record, error) {
	var pos int64
	err := l.db.QueryRowContext(ctx, l.sqlt.GetByID, id).Scan(&pos)
	if err == sql.ErrNoRows {
		return Record{}, NotFoundError(id)
	}
	if err != nil {
		return Record{}, Wrap(ErrSQL, "get record", err)
	}
	return Record{ID: id, Position: pos}, nil
}

// Count returns the number of records in the collection.
func (l *List) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := l.db.QueryRowContext(ctx, l.sqlt.CountRows).Scan(&n); err != nil {
		return 0, Wrap(ErrSQL, "count records", err)
	}
	return n, nil
}

// NextValue allocates the next ordinal position: max(order)+1, or 1 when
// the collection is empty. Concurrent callers can race and receive the
// same value; callers needing strict uniqueness must serialize externally.
func (l *List) NextValue(ctx context.Context) (int64, error) {
	var maxVal int64
	if err := l.db.QueryRowContext(ctx, l.sqlt.MaxValue).Scan(&maxVal); err != nil {
		return 0, Wrap(ErrSQL, "max ordering value", err)
	}
	return maxVal + 1, nil
}

// Indexes lists the table's indexes from the backend's schema metadata.
func (l *List) Indexes(ctx context.Context) ([]storage.IndexInfo, error) {
	infos, err := l.adapter.Indexes(ctx, l.db, l.spec.Table)
	if err != nil {
		return nil, Wrap(ErrSQL, "list indexes", err)
	}
	return infos, nil
}

// HasUniqueOrdering reports whether a unique index covers the ordering
// column. Advisory only: no mutation consults it; it is informative for
// callers deciding how carefully to batch.
func (l *List) HasUniqueOrdering(ctx context.Context) (bool, error) {
	infos, err := l.Indexes(ctx)
	if err != nil {
		return false, err
	}
	for _, ix := range infos {
		if ix.Unique && ix.Covers(l.spec.OrderColumn) {
			return true, nil
		}
	}
	return false, nil
}

// Save persists a record's ordering value as a direct assignment, with no
// range or uniqueness validation. Saving a record whose id no longer
// resolves updates nothing and reports no error.
func (l *List) Save(ctx context.Context, r *Record) error {
	if _, err := l.db.ExecContext(ctx, l.sqlt.SetValue, r.Position, r.ID); err != nil {
		return Wrap(ErrSQL, "save ordering value", err)
	}
	return nil
}

// ReorderBatch applies a full set of position assignments in one
// transaction, all-or-nothing. A two-pass displacement first parks every
// resolvable row at a negative placeholder so a unique constraint on the
// ordering column is never transiently violated mid-batch.
//
// Items with a nil ID are skipped in both passes. Items with a nil Value
// are skipped in the assignment pass and keep their negative placeholder
// after commit: supply a value for every item you want positioned.
func (l *List) ReorderBatch(ctx context.Context, items []BatchItem) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	assignments := make([]ops.Assignment, len(items))
	for i, it := range items {
		assignments[i] = ops.Assignment{ID: it.ID, Value: it.Value}
	}
	if err := ops.ExecuteBatch(ctx, tx, l.sqlt, assignments); err != nil {
		return Wrap(ErrSQL, "reorder batch", err)
	}

	if err := tx.Commit(); err != nil {
		return Wrap(ErrSQL, "commit", err)
	}

	l.opts.Logger.Debug().
		Str("table", l.spec.Table).
		Int("items", len(items)).
		Msg("reorder batch committed")
	return nil
}

// ReorderSingle moves one record to newPos, shifting every record between
// the old and new position by one to keep the range contiguous. The whole
// move is one transaction. An id that does not resolve is a silent no-op.
//
// Assumes the collection's positions are already contiguous integers; on a
// collection with gaps or duplicates the range shift can widen them.
func (l *List) ReorderSingle(ctx context.Context, id, newPos int64) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	moved, err := ops.ExecuteMove(ctx, tx, l.sqlt, id, newPos)
	if err != nil {
		return Wrap(ErrSQL, "reorder single", err)
	}

	if err := tx.Commit(); err != nil {
		return Wrap(ErrSQL, "commit", err)
	}

	l.opts.Logger.Debug().
		Str("table", l.spec.Table).
		Int64("id", id).
		Int64("position", newPos).
		Bool("moved", moved).
		Msg("reorder single committed")
	return nil
}

// Compact renumbers the collection to contiguous positions 1..N in its
// current order, using the same two-pass displacement as ReorderBatch.
// Useful to restore the precondition ReorderSingle relies on.
func (l *List) Compact(ctx context.Context) error {
	records, err := l.Ordered(ctx)
	if err != nil {
		return err
	}

	items := make([]BatchItem, len(records))
	for i, r := range records {
		items[i] = Item(r.ID, int64(i+1))
	}
	if err := l.ReorderBatch(ctx, items); err != nil {
		return err
	}

	l.opts.Logger.Debug().
		Str("table", l.spec.Table).
		Int("records", len(records)).
		Msg("collection compacted")
	return nil
}

func validIdent(s string) bool {
	return sqlbuilder.ValidIdent(s)
}
