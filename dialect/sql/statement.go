package sql

import (
	"slices"
	"strconv"
	"strings"
)

// statement is the kind of SQL statement a Query is compiled into.
type statement int

const (
	selectStatement statement = iota
	insertStatement
	updateStatement
	deleteStatement
)

func (s statement) String() string {
	switch s {
	case insertStatement:
		return "INSERT"
	case updateStatement:
		return "UPDATE"
	case deleteStatement:
		return "DELETE"
	default:
		return "SELECT"
	}
}

// check reports the recorded clause error, or the first clause that is not
// allowed in statements of kind s.
//
//	          only  orderBy  limit  offset  where  join
//	SELECT    yes   yes      yes    yes     yes    yes
//	INSERT    no    no       no     no      no     no
//	UPDATE    no    no       no     no      yes    yes
//	DELETE    no    no       no     no      yes    yes
func (q *Query) check(s statement) error {
	if q.err != nil {
		return q.err
	}
	if s == selectStatement {
		return nil
	}
	forbidden := func(clause string) error {
		return validationError(s.String(), clause, ErrForbidden)
	}
	switch {
	case q.fields != nil:
		return forbidden("only")
	case q.order != nil:
		return forbidden("orderBy")
	case q.limit != nil:
		return forbidden("limit")
	case q.offset != nil:
		return forbidden("offset")
	}
	if s == insertStatement {
		switch {
		case len(q.where) > 0:
			return forbidden("where")
		case len(q.joins) > 0:
			return forbidden("join")
		}
	}
	return nil
}

// selectQuery compiles a SELECT statement. A non-empty columns overrides
// the columns set by Only.
func (q *Query) selectQuery(columns ...string) (string, []any, error) {
	if err := q.check(selectStatement); err != nil {
		return "", nil, err
	}
	if len(columns) == 0 {
		columns = q.fields
	}
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(columns, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(q.table)
	q.writeJoins(&b)
	args := q.writeWhere(&b, nil)
	if q.order != nil {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.order.field)
		b.WriteByte(' ')
		b.WriteString(q.order.direction)
	}
	if q.limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*q.limit))
	}
	if q.offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(*q.offset))
	}
	return b.String(), args, nil
}

// insertQuery compiles an INSERT ... SET statement. With upsert, the same
// assignments are repeated in an ON DUPLICATE KEY UPDATE clause.
func (q *Query) insertQuery(values Values, upsert bool) (string, []any, error) {
	if err := q.check(insertStatement); err != nil {
		return "", nil, err
	}
	if len(values) == 0 {
		return "", nil, validationError(insertStatement.String(), "values", ErrMissing)
	}
	set, args := assignments(values, func(c string) string { return c })
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(q.table)
	b.WriteString(" SET ")
	b.WriteString(set)
	if upsert {
		b.WriteString(" ON DUPLICATE KEY UPDATE ")
		b.WriteString(set)
		args = append(args, args...)
	}
	return b.String(), args, nil
}

// updateQuery compiles an UPDATE statement. Set values are bound before the
// WHERE values.
func (q *Query) updateQuery(values Values) (string, []any, error) {
	if err := q.check(updateStatement); err != nil {
		return "", nil, err
	}
	if len(values) == 0 {
		return "", nil, validationError(updateStatement.String(), "values", ErrMissing)
	}
	set, args := assignments(values, q.qualify)
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(q.table)
	q.writeJoins(&b)
	b.WriteString(" SET ")
	b.WriteString(set)
	args = q.writeWhere(&b, args)
	return b.String(), args, nil
}

// deleteQuery compiles a DELETE statement. With joins, the multi-table form
// is used so that rows are removed from the query table only.
func (q *Query) deleteQuery() (string, []any, error) {
	if err := q.check(deleteStatement); err != nil {
		return "", nil, err
	}
	var b strings.Builder
	b.WriteString("DELETE ")
	if len(q.joins) > 0 {
		b.WriteString(q.table)
		b.WriteByte(' ')
	}
	b.WriteString("FROM ")
	b.WriteString(q.table)
	q.writeJoins(&b)
	args := q.writeWhere(&b, nil)
	return b.String(), args, nil
}

func (q *Query) writeJoins(b *strings.Builder) {
	for _, j := range q.joins {
		b.WriteByte(' ')
		b.WriteString(j)
	}
}

// writeWhere writes "WHERE 1" followed by every fragment and returns args
// extended with the fragment values in append order.
func (q *Query) writeWhere(b *strings.Builder, args []any) []any {
	b.WriteString(" WHERE 1")
	for _, f := range q.where {
		b.WriteByte(' ')
		b.WriteString(f.sql)
		args = append(args, f.args...)
	}
	return args
}

// assignments renders "c1 = ?, c2 = ?" in ascending column order.
func assignments(values Values, column func(string) string) (string, []any) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)
	set := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		set[i] = column(name) + " = ?"
		args[i] = values[name]
	}
	return strings.Join(set, ", "), args
}
