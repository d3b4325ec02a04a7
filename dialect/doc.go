// Package dialect defines the execution contract shared by the statement
// builder and the drivers that run its statements.
//
// # Dialect Constants
//
//	dialect.MySQL  = "mysql"
//	dialect.SQLite = "sqlite"
//
// Statements are always rendered in the MySQL flavour with `?` placeholders.
// SQLite is accepted because it understands the same placeholder syntax and is
// used as an in-process store in tests.
//
// # ExecQuerier Interface
//
// Anything that can run a compiled statement:
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// # Driver Interface
//
//	type Driver interface {
//	    ExecQuerier
//	    Close() error
//	    Dialect() string
//	}
//
// # Usage
//
//	drv, err := sql.Open(dialect.MySQL, "root:root@tcp(localhost:3306)/app")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	rows, err := sql.NewQuery(drv, "users").Where("age", ">", 18).Get(ctx)
package dialect
