package ops

import (
	"context"
	"database/sql"

	"github.com/orderable/orderable/orderable/storage"
)

// Assignment binds a row id to its target ordering value. Either side may
// be absent: a nil ID skips the row entirely, a nil Value leaves the row
// parked at its displacement placeholder after commit.
type Assignment struct {
	ID    *int64
	Value *int64
}

// ExecuteBatch applies a full set of ordering assignments inside tx without
// transiently violating a unique constraint on the ordering column.
//
// Pass one parks every resolvable row at -(i+1), a value range disjoint
// from the non-negative values live rows hold. Pass two writes the final
// values. The caller owns commit and rollback.
func ExecuteBatch(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, items []Assignment) error {
	for i, it := range items {
		if it.ID == nil {
			continue
		}
		placeholder := -int64(i + 1)
		if _, err := tx.ExecContext(ctx, sqlt.SetValue, placeholder, *it.ID); err != nil {
			return err
		}
	}
	for _, it := range items {
		if it.ID == nil || it.Value == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, sqlt.SetValue, *it.Value, *it.ID); err != nil {
			return err
		}
	}
	return nil
}
