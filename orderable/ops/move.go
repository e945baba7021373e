package ops

import (
	"context"
	"database/sql"
	"errors"

	"github.com/orderable/orderable/orderable/storage"
)

// ExecuteMove moves one row to newPos with a contiguous-range shift inside
// tx. Rows between the old and new position slide by one to close the gap
// and open the target slot, then the moved row lands on newPos.
//
// Returns (false, nil) when the id does not resolve; nothing was touched.
// Assumes the collection's ordering values are contiguous: with gaps or
// duplicates already present the shift can widen them. The caller owns
// commit and rollback.
func ExecuteMove(ctx context.Context, tx *sql.Tx, sqlt storage.SQL, id, newPos int64) (bool, error) {
	var current int64
	err := tx.QueryRowContext(ctx, sqlt.GetByID, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if newPos > current {
		// moving down: close the gap above, open a slot at newPos
		if _, err := tx.ExecContext(ctx, sqlt.ShiftDown, current+1, newPos); err != nil {
			return false, err
		}
	} else {
		// moving up; newPos == current makes the range empty
		if _, err := tx.ExecContext(ctx, sqlt.ShiftUp, newPos, current-1); err != nil {
			return false, err
		}
	}

	if _, err := tx.ExecContext(ctx, sqlt.SetValue, newPos, id); err != nil {
		return false, err
	}
	return true, nil
}
