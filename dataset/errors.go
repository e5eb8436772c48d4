package dataset

import "errors"

var (
	// ErrColumnExists is returned when WithColumn would shadow an existing column.
	ErrColumnExists = errors.New("column already exists")

	// ErrRowCountMismatch is returned when a new column's values do not line up
	// with the table's rows.
	ErrRowCountMismatch = errors.New("value count does not match row count")
)
