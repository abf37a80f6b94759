package db

import (
	"context"
	"fmt"
)

// Query runs one read query and returns the column names plus every row as
// raw driver values. Callers format the values for display.
func (d *DB) Query(ctx context.Context, query string, args ...any) ([]string, [][]any, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}

	var result [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("query failed: %w", err)
		}
		result = append(result, vals)
	}
	return cols, result, rows.Err()
}
