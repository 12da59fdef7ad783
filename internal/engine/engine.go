// Package engine provisions disposable sandbox databases and executes
// exercise SQL against them.
//
// Every sandbox starts from the same seed schema and is destroyed after one
// exercise, so exercises can never interfere with each other. SQL is sent to
// the engine verbatim; engine errors keep their original message and are
// only classified into domain error types (constraint violation, connection
// loss) where the driver allows it.
package engine

import (
	"database/sql"

	"sqlcoach/internal/domain"
)

// captureRows drains a result set into a domain.RowSet.
func captureRows(rows *sql.Rows) (*domain.RowSet, error) {
	defer rows.Close() //nolint:errcheck

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	set := &domain.RowSet{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		set.Rows = append(set.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
