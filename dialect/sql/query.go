package sql

import (
	"slices"
	"strings"

	"github.com/syssam/mysqlb/dialect"
)

// Row is a single result row keyed by column name. Text and blob columns
// are returned as string.
type Row map[string]any

// Values maps column names to the values written by Create and Update.
// Columns are rendered in ascending name order.
type Values map[string]any

// JoinKind is the type of a JOIN clause.
type JoinKind string

// Join kinds.
const (
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
	JoinInner JoinKind = "INNER"
)

// Order directions accepted by OrderBy (case-insensitive).
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// fragment is a piece of SQL paired with the values bound to its placeholders.
type fragment struct {
	sql  string
	args []any
}

type ordering struct {
	field     string
	direction string
}

// Query accumulates the clauses of a single statement against one table and
// executes it through the bound dialect.ExecQuerier.
//
// Clause methods never panic. The first misuse is recorded and returned by
// the terminal method before anything is sent to the database:
//
//	rows, err := sql.NewQuery(drv, "users").
//	    Where("age", ">", 18).
//	    OrderBy("id", "desc").
//	    Limit(10).
//	    Get(ctx)
//
// A Query executes at most once. Use Clone to derive another statement from
// the same clauses.
type Query struct {
	drv    dialect.ExecQuerier
	table  string
	fields []string
	where  []fragment
	joins  []string
	order  *ordering
	limit  *int
	offset *int
	err    error
	done   bool
}

// NewQuery returns a Query for table bound to drv.
func NewQuery(drv dialect.ExecQuerier, table string) *Query {
	q := &Query{drv: drv, table: table}
	switch {
	case drv == nil:
		q.fail(validationError("use", "driver", ErrMissing))
	case table == "":
		q.fail(validationError("use", "table", ErrMissing))
	}
	return q
}

// Table returns the table the query is bound to.
func (q *Query) Table() string { return q.table }

// Err returns the first validation error recorded by a clause method.
func (q *Query) Err() error { return q.err }

// Where appends "AND field op ?" to the WHERE clause. A field without a
// table qualifier is qualified with the query table.
func (q *Query) Where(field, op string, value any) *Query {
	switch {
	case field == "":
		q.fail(validationError("where", "field", ErrMissing))
		return q
	case op == "":
		q.fail(validationError("where", "comparison", ErrMissing))
		return q
	}
	q.where = append(q.where, fragment{
		sql:  "AND " + q.qualify(field) + " " + op + " ?",
		args: []any{value},
	})
	return q
}

// WhereRaw appends "AND expr" to the WHERE clause as is. Only args are
// parameterized; the caller is responsible for the expression text.
func (q *Query) WhereRaw(expr string, args ...any) *Query {
	if expr == "" {
		q.fail(validationError("whereRaw", "expression", ErrMissing))
		return q
	}
	q.where = append(q.where, fragment{
		sql:  "AND " + expr,
		args: slices.Clone(args),
	})
	return q
}

// WhereIn appends "AND field IN (?, ...)" with one placeholder per value.
// An empty list renders "IN ()", which never matches a row and is rejected
// by MySQL; it is not dropped, so the statement scope is never widened.
func (q *Query) WhereIn(field string, values ...any) *Query {
	if field == "" {
		q.fail(validationError("whereIn", "field", ErrMissing))
		return q
	}
	q.where = append(q.where, fragment{
		sql:  "AND " + q.qualify(field) + " IN (" + placeholders(len(values)) + ")",
		args: slices.Clone(values),
	})
	return q
}

// Like is a shortcut for Where(field, "LIKE", value).
func (q *Query) Like(field string, value any) *Query {
	return q.Where(field, "LIKE", value)
}

// LeftJoin appends "LEFT JOIN table ON <query table>.localField = table.remoteField".
func (q *Query) LeftJoin(table, localField, remoteField string) *Query {
	return q.Join(JoinLeft, table, localField, "=", remoteField)
}

// RightJoin appends a RIGHT JOIN. See LeftJoin.
func (q *Query) RightJoin(table, localField, remoteField string) *Query {
	return q.Join(JoinRight, table, localField, "=", remoteField)
}

// InnerJoin appends an INNER JOIN. See LeftJoin.
func (q *Query) InnerJoin(table, localField, remoteField string) *Query {
	return q.Join(JoinInner, table, localField, "=", remoteField)
}

// Join appends a JOIN clause of the given kind with a custom comparison
// operator. An empty op defaults to "=".
func (q *Query) Join(kind JoinKind, table, localField, op, remoteField string) *Query {
	switch {
	case table == "":
		q.fail(validationError("join", "table", ErrMissing))
		return q
	case localField == "" || remoteField == "":
		q.fail(validationError("join", "field", ErrMissing))
		return q
	}
	if op == "" {
		op = "="
	}
	q.joins = append(q.joins, string(kind)+" JOIN "+table+" ON "+
		q.table+"."+localField+" "+op+" "+table+"."+remoteField)
	return q
}

// Only sets the selected columns. It can be called once.
func (q *Query) Only(fields ...string) *Query {
	switch {
	case q.fields != nil:
		q.fail(validationError("only", "only", ErrAlreadySet))
	case len(fields) == 0:
		q.fail(validationError("only", "fields", ErrMissing))
	default:
		q.fields = slices.Clone(fields)
	}
	return q
}

// OrderBy sets the ORDER BY clause. direction is ASC or DESC in any case.
// It can be called once.
func (q *Query) OrderBy(field, direction string) *Query {
	dir := strings.ToUpper(direction)
	switch {
	case dir != OrderAsc && dir != OrderDesc:
		q.fail(validationError("orderBy", "orderBy", ErrInvalidDirection))
	case q.order != nil:
		q.fail(validationError("orderBy", "orderBy", ErrAlreadySet))
	case field == "":
		q.fail(validationError("orderBy", "field", ErrMissing))
	default:
		q.order = &ordering{field: q.qualify(field), direction: dir}
	}
	return q
}

// Limit sets the LIMIT clause. It can be called once.
func (q *Query) Limit(n int) *Query {
	switch {
	case n < 0:
		q.fail(validationError("limit", "limit", ErrNegative))
	case q.limit != nil:
		q.fail(validationError("limit", "limit", ErrAlreadySet))
	default:
		q.limit = &n
	}
	return q
}

// Offset sets the OFFSET clause. It can be called once.
func (q *Query) Offset(n int) *Query {
	switch {
	case n < 0:
		q.fail(validationError("offset", "offset", ErrNegative))
	case q.offset != nil:
		q.fail(validationError("offset", "offset", ErrAlreadySet))
	default:
		q.offset = &n
	}
	return q
}

// Clone returns a deep copy of the query that has not been executed.
// The copy shares no fragment storage with q.
func (q *Query) Clone() *Query {
	c := q.scope()
	c.fields = slices.Clone(q.fields)
	if q.order != nil {
		o := *q.order
		c.order = &o
	}
	if q.limit != nil {
		n := *q.limit
		c.limit = &n
	}
	if q.offset != nil {
		n := *q.offset
		c.offset = &n
	}
	return c
}

// scope copies the WHERE and JOIN state of q, leaving out the selected
// columns, ordering, limit and offset.
func (q *Query) scope() *Query {
	c := &Query{
		drv:   q.drv,
		table: q.table,
		joins: slices.Clone(q.joins),
		err:   q.err,
	}
	if q.where != nil {
		c.where = make([]fragment, len(q.where))
		for i, f := range q.where {
			c.where[i] = fragment{sql: f.sql, args: slices.Clone(f.args)}
		}
	}
	return c
}

// fail records err unless an earlier error was recorded.
func (q *Query) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

// qualify prefixes field with the query table unless it is already qualified.
func (q *Query) qualify(field string) string {
	if strings.Contains(field, ".") {
		return field
	}
	return q.table + "." + field
}

// placeholders returns n comma separated placeholders.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
