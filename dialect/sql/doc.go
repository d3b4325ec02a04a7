// Package sql provides the statement builder and the database/sql based
// drivers it runs on.
//
// # Query
//
// A Query is bound to one table and one dialect.ExecQuerier. Clause methods
// accumulate state and return the query for chaining; a terminal method
// compiles the statement and executes it:
//
//	q := sql.NewQuery(drv, "users").
//	    Where("age", ">", 18).          // AND users.age > ?
//	    WhereIn("id", 1, 2, 3).         // AND users.id IN (?, ?, ?)
//	    Like("f_name", "J%").           // AND users.f_name LIKE ?
//	    LeftJoin("professions", "id", "user_id").
//	    Only("users.id", "professions.name").
//	    OrderBy("id", "desc").
//	    Limit(10).
//	    Offset(20)
//	rows, err := q.Get(ctx)
//
// Terminal methods:
//
//   - Get, First, Find, Count and Paginate compile a SELECT
//   - Create compiles INSERT ... SET, optionally with ON DUPLICATE KEY UPDATE
//   - Update and Delete compile UPDATE and DELETE scoped by WHERE and JOIN
//
// Every statement starts its condition with "WHERE 1", so an empty WHERE
// clause addresses the whole table.
//
// # Validation
//
// Clause methods do not return errors. The first misuse (a clause set twice,
// an invalid direction, a negative limit) is recorded and returned by the
// terminal method as a *ValidationError before anything reaches the
// database. Terminal methods also reject clauses their statement does not
// support, e.g. OrderBy before Update or Where before Create.
//
// # Pagination
//
//	page, err := sql.NewQuery(drv, "users").OrderBy("id", "asc").Paginate(ctx, 20, 3)
//	next, ok := page.NextPage()
//
// # Deferred results
//
//	f := sql.Async(ctx, q.Get)
//	rows, err := f.Await(ctx)
//
// # Drivers
//
// Driver runs statements on a *sql.DB. StatsDriver and DebugDriver wrap any
// dialect.Driver with statistics and statement logging.
package sql
