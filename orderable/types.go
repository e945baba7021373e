package orderable

import (
	"github.com/rs/zerolog"

	"github.com/orderable/orderable/orderable/storage"
)

// DefaultOrderColumn is the conventional ordering column name used when a
// Spec leaves OrderColumn empty.
const DefaultOrderColumn = "display_order"

// DefaultIDColumn is used when a Spec leaves IDColumn empty.
const DefaultIDColumn = "id"

// Spec is the per-type configuration of a ranked collection: which table
// it lives in and which columns hold the identifier and the ordinal
// position. One Spec describes a record type, not an instance.
type Spec struct {
	Table       string
	IDColumn    string
	OrderColumn string
}

// WithDefaults fills empty column names with the conventional ones.
func (s Spec) WithDefaults() Spec {
	if s.IDColumn == "" {
		s.IDColumn = DefaultIDColumn
	}
	if s.OrderColumn == "" {
		s.OrderColumn = DefaultOrderColumn
	}
	return s
}

// Validate checks that every identifier is safe to embed in SQL.
func (s Spec) Validate() error {
	if s.Table == "" {
		return SpecError("table", "table name required")
	}
	for field, ident := range map[string]string{
		"table":        s.Table,
		"id_column":    s.IDColumn,
		"order_column": s.OrderColumn,
	} {
		if !validIdent(ident) {
			return SpecError(field, "invalid identifier "+ident)
		}
	}
	return nil
}

// AsStorageTable converts the spec for adapter consumption.
func (s Spec) AsStorageTable() storage.Table {
	return storage.Table{Name: s.Table, IDColumn: s.IDColumn, OrderColumn: s.OrderColumn}
}

// Record is a snapshot of one row's identity and ordinal position.
type Record struct {
	ID       int64
	Position int64
}

// OrderingValue reads the snapshot's ordinal position.
func (r *Record) OrderingValue() int64 {
	return r.Position
}

// SetOrderingValue writes the snapshot's ordinal position and returns the
// record for chaining. No range or uniqueness validation happens here;
// nothing is persisted until List.Save.
func (r *Record) SetOrderingValue(v int64) *Record {
	r.Position = v
	return r
}

// BatchItem is one entry of a batch reorder: a row id and its target
// ordinal position. Pointers model optional keys: a nil ID skips the row,
// a nil Value leaves the row at its negative displacement placeholder
// after commit (see List.ReorderBatch).
type BatchItem struct {
	ID    *int64
	Value *int64
}

// Item builds a fully-specified BatchItem.
func Item(id, value int64) BatchItem {
	return BatchItem{ID: &id, Value: &value}
}

// Options configures a List.
type Options struct {
	// Logger receives debug events for mutating operations.
	Logger zerolog.Logger
}

// DefaultOptions returns sensible defaults: no logging.
func DefaultOptions() Options {
	return Options{Logger: zerolog.Nop()}
}
