package dialect

import (
	"context"
)

// Dialect names for the supported backends.
const (
	MySQL  = "mysql"
	SQLite = "sqlite"
)

// ExecQuerier wraps the two statement entry points.
//
// Exec runs a statement that does not return rows. v is nil or a *sql.Result.
// Query runs a statement that returns rows. v is a *sql.Rows.
// In both cases args must be a []any aligned with the `?` placeholders of query.
type ExecQuerier interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all necessary operations for a
// connection to a database.
type Driver interface {
	ExecQuerier
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}
