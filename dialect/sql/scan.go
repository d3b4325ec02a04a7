package sql

import (
	"fmt"
)

// ScanRows reads all remaining rows into Row values. []byte column values
// are converted to string. With duplicate column names (e.g. "id" from a
// joined table), the right-most column wins.
func ScanRows(rows ColumnScanner) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	result := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = values[i]
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ScanInt64 reads the first column of the first row as an int64.
func ScanInt64(rows ColumnScanner) (int64, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("dialect/sql: no rows in count result")
	}
	var n NullInt64
	if err := rows.Scan(&n); err != nil {
		return 0, err
	}
	return n.Int64, rows.Err()
}
