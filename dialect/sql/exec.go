package sql

import (
	"context"
)

// ExecResult holds the metadata returned for INSERT, UPDATE and DELETE
// statements.
type ExecResult struct {
	// LastInsertID is the identifier generated by an INSERT.
	LastInsertID int64
	// RowsAffected is the number of rows changed by the statement.
	RowsAffected int64
}

// Get executes the SELECT statement and returns all matching rows.
func (q *Query) Get(ctx context.Context) ([]Row, error) {
	if err := q.ready("get"); err != nil {
		return nil, err
	}
	return q.get(ctx)
}

// First limits the statement to one row and returns it. It returns a nil Row
// and a nil error when nothing matches.
func (q *Query) First(ctx context.Context) (Row, error) {
	if err := q.ready("getFirst"); err != nil {
		return nil, err
	}
	rows, err := q.Limit(1).get(ctx)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// Find returns the row whose id column equals id, or nil.
func (q *Query) Find(ctx context.Context, id any) (Row, error) {
	return q.Where("id", "=", id).First(ctx)
}

// Count returns the number of rows matching the statement.
func (q *Query) Count(ctx context.Context) (int64, error) {
	if err := q.ready("getCount"); err != nil {
		return 0, err
	}
	return q.count(ctx)
}

// Create executes an INSERT of values. When withUpdate is set, a row that
// collides on a unique or primary key is updated with the same values.
func (q *Query) Create(ctx context.Context, values Values, withUpdate bool) (ExecResult, error) {
	if err := q.ready("create"); err != nil {
		return ExecResult{}, err
	}
	query, args, err := q.insertQuery(values, withUpdate)
	if err != nil {
		return ExecResult{}, err
	}
	return q.exec(ctx, query, args)
}

// Update executes an UPDATE that sets values on the rows matching the
// WHERE clause.
func (q *Query) Update(ctx context.Context, values Values) (ExecResult, error) {
	if err := q.ready("update"); err != nil {
		return ExecResult{}, err
	}
	query, args, err := q.updateQuery(values)
	if err != nil {
		return ExecResult{}, err
	}
	return q.exec(ctx, query, args)
}

// Delete executes a DELETE of the rows matching the WHERE clause.
func (q *Query) Delete(ctx context.Context) (ExecResult, error) {
	if err := q.ready("delete"); err != nil {
		return ExecResult{}, err
	}
	query, args, err := q.deleteQuery()
	if err != nil {
		return ExecResult{}, err
	}
	return q.exec(ctx, query, args)
}

// Paginate returns page number page (1-based, 0 means 1) of pageSize rows.
//
// The total is counted first with the same WHERE and JOIN clauses but
// without ordering, limit or offset. The two statements are not run in a
// transaction, so concurrent writes between them may make the total and
// the items disagree.
func (q *Query) Paginate(ctx context.Context, pageSize, page int) (*Paginator, error) {
	if err := q.ready("getPaginated"); err != nil {
		return nil, err
	}
	switch {
	case pageSize == 0:
		return nil, validationError("getPaginated", "pageSize", ErrMissing)
	case pageSize < 0:
		return nil, validationError("getPaginated", "pageSize", ErrNegative)
	case page < 0:
		return nil, validationError("getPaginated", "page", ErrNegative)
	case page == 0:
		page = 1
	}
	q.Limit(pageSize).Offset(pageSize * (page - 1))
	if _, _, err := q.selectQuery(); err != nil {
		return nil, err
	}
	total, err := q.scope().count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := q.get(ctx)
	if err != nil {
		return nil, err
	}
	return NewPaginator(total, pageSize, page, items), nil
}

// ready fails if the query was already executed.
func (q *Query) ready(op string) error {
	if q.done {
		return validationError(op, "", ErrExecuted)
	}
	return nil
}

func (q *Query) get(ctx context.Context) ([]Row, error) {
	query, args, err := q.selectQuery()
	if err != nil {
		return nil, err
	}
	q.done = true
	rows := &Rows{}
	if err := q.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()
	return ScanRows(rows)
}

func (q *Query) count(ctx context.Context) (int64, error) {
	query, args, err := q.selectQuery("COUNT(*)")
	if err != nil {
		return 0, err
	}
	q.done = true
	rows := &Rows{}
	if err := q.drv.Query(ctx, query, args, rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	return ScanInt64(rows)
}

func (q *Query) exec(ctx context.Context, query string, args []any) (ExecResult, error) {
	q.done = true
	var res Result
	if err := q.drv.Exec(ctx, query, args, &res); err != nil {
		return ExecResult{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ExecResult{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ExecResult{}, err
	}
	return ExecResult{LastInsertID: id, RowsAffected: n}, nil
}
