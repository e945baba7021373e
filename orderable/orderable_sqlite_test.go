package orderable_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/orderable/orderable/orderable"
	"github.com/orderable/orderable/orderable/storage/sqlite"
	_ "modernc.org/sqlite"
)

const ddlPlain = `CREATE TABLE items (
	id INTEGER PRIMARY KEY,
	name TEXT,
	display_order INTEGER NOT NULL
)`

const ddlUnique = `CREATE TABLE items (
	id INTEGER PRIMARY KEY,
	name TEXT,
	display_order INTEGER NOT NULL UNIQUE
)`

func newList(t *testing.T, ddl string) *orderable.List {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec(ddl); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	list, err := orderable.New(context.Background(), sqlite.New(dbPath),
		orderable.Spec{Table: "items"}, orderable.DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = list.Close() })
	return list
}

func insert(t *testing.T, list *orderable.List, id, pos int64) {
	t.Helper()
	_, err := list.DB().Exec("INSERT INTO items(id, name, display_order) VALUES(?, ?, ?)", id, "n", pos)
	if err != nil {
		t.Fatalf("insert(%d, %d): %v", id, pos, err)
	}
}

// positions reads the full id -> position mapping straight from the table,
// including rows parked at negative placeholders.
func positions(t *testing.T, list *orderable.List) map[int64]int64 {
	t.Helper()
	rows, err := list.DB().Query("SELECT id, display_order FROM items")
	if err != nil {
		t.Fatalf("query positions: %v", err)
	}
	defer rows.Close()

	got := make(map[int64]int64)
	for rows.Next() {
		var id, pos int64
		if err := rows.Scan(&id, &pos); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got[id] = pos
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	return got
}

func wantPositions(t *testing.T, list *orderable.List, want map[int64]int64) {
	t.Helper()
	got := positions(t, list)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for id, pos := range want {
		if got[id] != pos {
			t.Fatalf("id %d: got position %d want %d (full: %v)", id, got[id], pos, got)
		}
	}
}

func TestOrderedAndOrderedDesc(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	insert(t, list, 10, 3)
	insert(t, list, 20, 1)
	insert(t, list, 30, 2)

	asc, err := list.Ordered(ctx)
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	wantIDs := []int64{20, 30, 10}
	if len(asc) != len(wantIDs) {
		t.Fatalf("got %d records want %d", len(asc), len(wantIDs))
	}
	for i, r := range asc {
		if r.ID != wantIDs[i] {
			t.Fatalf("asc[%d].ID=%d want %d", i, r.ID, wantIDs[i])
		}
		if i > 0 && asc[i-1].Position > r.Position {
			t.Fatalf("asc not sorted at %d: %v", i, asc)
		}
	}

	desc, err := list.OrderedDesc(ctx)
	if err != nil {
		t.Fatalf("OrderedDesc: %v", err)
	}
	if len(desc) != len(asc) {
		t.Fatalf("desc has %d records want %d", len(desc), len(asc))
	}
	for i, r := range desc {
		mirror := asc[len(asc)-1-i]
		if r.ID != mirror.ID || r.Position != mirror.Position {
			t.Fatalf("desc[%d]=%+v want %+v", i, r, mirror)
		}
	}
}

func TestNextValue(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	next, err := list.NextValue(ctx)
	if err != nil {
		t.Fatalf("NextValue empty: %v", err)
	}
	if next != 1 {
		t.Fatalf("empty collection: next=%d want 1", next)
	}

	insert(t, list, 1, 2)
	insert(t, list, 2, 7) // gaps allowed; only the max matters

	next, err = list.NextValue(ctx)
	if err != nil {
		t.Fatalf("NextValue: %v", err)
	}
	if next != 8 {
		t.Fatalf("next=%d want 8", next)
	}
}

func TestGetSaveAccessors(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	insert(t, list, 1, 5)

	rec, err := list.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.OrderingValue() != 5 {
		t.Fatalf("OrderingValue=%d want 5", rec.OrderingValue())
	}

	if err := list.Save(ctx, rec.SetOrderingValue(9)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec, err = list.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get after save: %v", err)
	}
	if rec.Position != 9 {
		t.Fatalf("position=%d want 9", rec.Position)
	}

	_, err = list.Get(ctx, 42)
	if err == nil || !orderable.IsKind(err, orderable.ErrNotFound) {
		t.Fatalf("expected not_found, got: %v", err)
	}

	// saving a stale snapshot of a vanished row updates nothing
	ghost := orderable.Record{ID: 42, Position: 1}
	if err := list.Save(ctx, ghost.SetOrderingValue(3)); err != nil {
		t.Fatalf("Save missing id: %v", err)
	}
	wantPositions(t, list, map[int64]int64{1: 9})
}

func TestReorderSingle_Down(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	for id := int64(1); id <= 4; id++ {
		insert(t, list, id, id)
	}

	if err := list.ReorderSingle(ctx, 1, 3); err != nil {
		t.Fatalf("ReorderSingle: %v", err)
	}
	wantPositions(t, list, map[int64]int64{1: 3, 2: 1, 3: 2, 4: 4})
}

func TestReorderSingle_Up(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	for id := int64(1); id <= 4; id++ {
		insert(t, list, id, id)
	}

	if err := list.ReorderSingle(ctx, 3, 1); err != nil {
		t.Fatalf("ReorderSingle: %v", err)
	}
	wantPositions(t, list, map[int64]int64{1: 2, 2: 3, 3: 1, 4: 4})
}

func TestReorderSingle_SamePosition(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		insert(t, list, id, id)
	}

	if err := list.ReorderSingle(ctx, 2, 2); err != nil {
		t.Fatalf("ReorderSingle: %v", err)
	}
	wantPositions(t, list, map[int64]int64{1: 1, 2: 2, 3: 3})
}

func TestReorderSingle_MissingID(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		insert(t, list, id, id)
	}

	if err := list.ReorderSingle(ctx, 99, 1); err != nil {
		t.Fatalf("ReorderSingle missing id: %v", err)
	}
	wantPositions(t, list, map[int64]int64{1: 1, 2: 2, 3: 3})
}

func TestReorderBatch_PermutationUnderUniqueIndex(t *testing.T) {
	list := newList(t, ddlUnique)
	ctx := context.Background()

	for id := int64(1); id <= 4; id++ {
		insert(t, list, id, id)
	}

	// full reversal; every intermediate state would collide without the
	// displacement pass
	items := []orderable.BatchItem{
		orderable.Item(1, 4),
		orderable.Item(2, 3),
		orderable.Item(3, 2),
		orderable.Item(4, 1),
	}
	if err := list.ReorderBatch(ctx, items); err != nil {
		t.Fatalf("ReorderBatch: %v", err)
	}
	wantPositions(t, list, map[int64]int64{1: 4, 2: 3, 3: 2, 4: 1})

	seen := make(map[int64]bool)
	for _, pos := range positions(t, list) {
		if pos <= 0 {
			t.Fatalf("negative placeholder leaked: %d", pos)
		}
		if seen[pos] {
			t.Fatalf("duplicate position %d", pos)
		}
		seen[pos] = true
	}
}

func TestReorderBatch_RollbackOnConstraintViolation(t *testing.T) {
	list := newList(t, ddlUnique)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		insert(t, list, id, id)
	}

	// duplicate target values hit the unique index in the assignment pass
	items := []orderable.BatchItem{
		orderable.Item(1, 2),
		orderable.Item(2, 2),
		orderable.Item(3, 1),
	}
	err := list.ReorderBatch(ctx, items)
	if err == nil {
		t.Fatalf("expected constraint violation")
	}
	if !orderable.IsKind(err, orderable.ErrSQL) {
		t.Fatalf("expected sql kind, got: %v", err)
	}
	wantPositions(t, list, map[int64]int64{1: 1, 2: 2, 3: 3})
}

func TestReorderBatch_NilIDSkipped(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	insert(t, list, 1, 1)
	insert(t, list, 2, 2)

	two := int64(5)
	items := []orderable.BatchItem{
		{ID: nil, Value: &two}, // no id: ignored in both passes
		orderable.Item(2, 1),
		orderable.Item(1, 2),
	}
	if err := list.ReorderBatch(ctx, items); err != nil {
		t.Fatalf("ReorderBatch: %v", err)
	}
	wantPositions(t, list, map[int64]int64{1: 2, 2: 1})
}

func TestReorderBatch_NilValueKeepsPlaceholder(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	insert(t, list, 1, 1)
	insert(t, list, 2, 2)

	one := int64(1)
	items := []orderable.BatchItem{
		orderable.Item(2, 1),
		{ID: &one, Value: nil}, // displaced in pass one, never reassigned
	}
	if err := list.ReorderBatch(ctx, items); err != nil {
		t.Fatalf("ReorderBatch: %v", err)
	}
	// sequence index 1 parks the row at -2
	wantPositions(t, list, map[int64]int64{1: -2, 2: 1})
}

func TestCompact(t *testing.T) {
	list := newList(t, ddlUnique)
	ctx := context.Background()

	insert(t, list, 7, 2)
	insert(t, list, 8, 5)
	insert(t, list, 9, 9)

	if err := list.Compact(ctx); err != nil {
		t.Fatalf("Compact: %v", err)
	}
	wantPositions(t, list, map[int64]int64{7: 1, 8: 2, 9: 3})

	n, err := list.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Fatalf("count=%d want 3", n)
	}
}

func TestHasUniqueOrdering(t *testing.T) {
	ctx := context.Background()

	t.Run("unique index on ordering column", func(t *testing.T) {
		list := newList(t, ddlUnique)
		unique, err := list.HasUniqueOrdering(ctx)
		if err != nil {
			t.Fatalf("HasUniqueOrdering: %v", err)
		}
		if !unique {
			t.Fatalf("expected unique ordering")
		}
	})

	t.Run("plain index on ordering column", func(t *testing.T) {
		list := newList(t, ddlPlain)
		if _, err := list.DB().Exec("CREATE INDEX idx_items_order ON items(display_order)"); err != nil {
			t.Fatalf("create index: %v", err)
		}
		unique, err := list.HasUniqueOrdering(ctx)
		if err != nil {
			t.Fatalf("HasUniqueOrdering: %v", err)
		}
		if unique {
			t.Fatalf("expected non-unique ordering")
		}
	})

	t.Run("composite unique index covering ordering column", func(t *testing.T) {
		list := newList(t, ddlPlain)
		if _, err := list.DB().Exec("CREATE UNIQUE INDEX idx_items_name_order ON items(name, display_order)"); err != nil {
			t.Fatalf("create index: %v", err)
		}
		unique, err := list.HasUniqueOrdering(ctx)
		if err != nil {
			t.Fatalf("HasUniqueOrdering: %v", err)
		}
		if !unique {
			t.Fatalf("expected unique ordering via composite index")
		}
	})

	t.Run("no index at all", func(t *testing.T) {
		list := newList(t, ddlPlain)
		unique, err := list.HasUniqueOrdering(ctx)
		if err != nil {
			t.Fatalf("HasUniqueOrdering: %v", err)
		}
		if unique {
			t.Fatalf("expected non-unique ordering")
		}
	})
}

func TestIndexesIntrospection(t *testing.T) {
	list := newList(t, ddlPlain)
	ctx := context.Background()

	if _, err := list.DB().Exec("CREATE UNIQUE INDEX idx_items_name_order ON items(name, display_order)"); err != nil {
		t.Fatalf("create index: %v", err)
	}

	infos, err := list.Indexes(ctx)
	if err != nil {
		t.Fatalf("Indexes: %v", err)
	}

	var found bool
	for _, ix := range infos {
		if ix.Name != "idx_items_name_order" {
			continue
		}
		found = true
		if !ix.Unique {
			t.Fatalf("expected unique, got %+v", ix)
		}
		want := []string{"name", "display_order"}
		if len(ix.Columns) != len(want) {
			t.Fatalf("columns %v want %v", ix.Columns, want)
		}
		for i, c := range want {
			if ix.Columns[i] != c {
				t.Fatalf("columns %v want %v", ix.Columns, want)
			}
		}
		if !ix.Covers("display_order") || ix.Covers("id") {
			t.Fatalf("Covers misreports for %+v", ix)
		}
	}
	if !found {
		t.Fatalf("index not reported: %+v", infos)
	}
}

func TestNew_SpecValidation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	_, err := orderable.New(ctx, sqlite.New(dbPath),
		orderable.Spec{Table: "items; DROP TABLE items"}, orderable.DefaultOptions())
	if err == nil || !orderable.IsKind(err, orderable.ErrSpec) {
		t.Fatalf("expected spec error, got: %v", err)
	}

	// valid identifiers but no such table: the probe fails
	_, err = orderable.New(ctx, sqlite.New(dbPath),
		orderable.Spec{Table: "missing"}, orderable.DefaultOptions())
	if err == nil || !orderable.IsKind(err, orderable.ErrSpec) {
		t.Fatalf("expected probe failure, got: %v", err)
	}
}

func TestSpecDefaults(t *testing.T) {
	list := newList(t, ddlPlain)
	spec := list.Spec()
	if spec.IDColumn != "id" {
		t.Fatalf("IDColumn=%q want id", spec.IDColumn)
	}
	if spec.OrderColumn != "display_order" {
		t.Fatalf("OrderColumn=%q want display_order", spec.OrderColumn)
	}
}
