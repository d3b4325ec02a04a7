package sql

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_Select(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		build func(*Query) *Query
		query string
		args  []any
	}{
		{
			name:  "no clauses",
			build: func(q *Query) *Query { return q },
			query: "SELECT * FROM users WHERE 1",
		},
		{
			name:  "where",
			build: func(q *Query) *Query { return q.Where("id", ">", 3) },
			query: "SELECT * FROM users WHERE 1 AND users.id > ?",
			args:  []any{3},
		},
		{
			name:  "qualified where",
			build: func(q *Query) *Query { return q.Where("professions.name", "=", "cook") },
			query: "SELECT * FROM users WHERE 1 AND professions.name = ?",
			args:  []any{"cook"},
		},
		{
			name: "where raw",
			build: func(q *Query) *Query {
				return q.Where("age", ">=", 18).WhereRaw("(users.age < ? OR users.f_name = ?)", 30, "Julia")
			},
			query: "SELECT * FROM users WHERE 1 AND users.age >= ? AND (users.age < ? OR users.f_name = ?)",
			args:  []any{18, 30, "Julia"},
		},
		{
			name:  "where raw without args",
			build: func(q *Query) *Query { return q.WhereRaw("users.l_name IS NOT NULL") },
			query: "SELECT * FROM users WHERE 1 AND users.l_name IS NOT NULL",
		},
		{
			name:  "where in",
			build: func(q *Query) *Query { return q.WhereIn("id", 1, 2, 3).Where("age", "=", 23) },
			query: "SELECT * FROM users WHERE 1 AND users.id IN (?, ?, ?) AND users.age = ?",
			args:  []any{1, 2, 3, 23},
		},
		{
			name:  "where in empty",
			build: func(q *Query) *Query { return q.WhereIn("id") },
			query: "SELECT * FROM users WHERE 1 AND users.id IN ()",
		},
		{
			name:  "like",
			build: func(q *Query) *Query { return q.Like("f_name", "J%") },
			query: "SELECT * FROM users WHERE 1 AND users.f_name LIKE ?",
			args:  []any{"J%"},
		},
		{
			name: "joins",
			build: func(q *Query) *Query {
				return q.LeftJoin("professions", "id", "user_id").
					RightJoin("teams", "team_id", "id").
					InnerJoin("cities", "city_id", "id").
					Join(JoinInner, "ranks", "age", ">=", "min_age")
			},
			query: "SELECT * FROM users" +
				" LEFT JOIN professions ON users.id = professions.user_id" +
				" RIGHT JOIN teams ON users.team_id = teams.id" +
				" INNER JOIN cities ON users.city_id = cities.id" +
				" INNER JOIN ranks ON users.age >= ranks.min_age" +
				" WHERE 1",
		},
		{
			name:  "join default comparison",
			build: func(q *Query) *Query { return q.Join(JoinLeft, "professions", "id", "", "user_id") },
			query: "SELECT * FROM users LEFT JOIN professions ON users.id = professions.user_id WHERE 1",
		},
		{
			name: "only order limit offset",
			build: func(q *Query) *Query {
				return q.Only("users.id", "professions.name").
					InnerJoin("professions", "id", "user_id").
					Where("id", ">", 2).
					OrderBy("id", "desc").
					Limit(1).
					Offset(2)
			},
			query: "SELECT users.id, professions.name FROM users" +
				" INNER JOIN professions ON users.id = professions.user_id" +
				" WHERE 1 AND users.id > ? ORDER BY users.id DESC LIMIT 1 OFFSET 2",
			args: []any{2},
		},
		{
			name:  "qualified order",
			build: func(q *Query) *Query { return q.OrderBy("professions.name", "Asc") },
			query: "SELECT * FROM users WHERE 1 ORDER BY professions.name ASC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			query, args, err := tt.build(NewQuery(&stubDriver{}, "users")).selectQuery()
			require.NoError(t, err)
			assert.Equal(t, tt.query, query)
			assert.Equal(t, tt.args, args)
			assert.Equal(t, strings.Count(query, "?"), len(args))
		})
	}
}

func TestQuery_Insert(t *testing.T) {
	t.Parallel()
	values := Values{"f_name": "x", "l_name": "y", "age": 18}

	query, args, err := NewQuery(&stubDriver{}, "users").insertQuery(values, false)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO users SET age = ?, f_name = ?, l_name = ?", query)
	assert.Equal(t, []any{18, "x", "y"}, args)

	query, args, err = NewQuery(&stubDriver{}, "professions").insertQuery(Values{"user_id": 2, "name": "lawyer"}, true)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO professions SET name = ?, user_id = ? ON DUPLICATE KEY UPDATE name = ?, user_id = ?", query)
	assert.Equal(t, []any{"lawyer", 2, "lawyer", 2}, args)
	assert.Equal(t, strings.Count(query, "?"), len(args))

	_, _, err = NewQuery(&stubDriver{}, "users").insertQuery(nil, false)
	require.ErrorIs(t, err, ErrMissing)
}

func TestQuery_Update(t *testing.T) {
	t.Parallel()
	query, args, err := NewQuery(&stubDriver{}, "users").
		LeftJoin("professions", "id", "user_id").
		Where("id", "=", 2).
		Where("professions.name", "=", "builder").
		updateQuery(Values{"f_name": "inserted", "users.l_name": "user", "age": 18})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users LEFT JOIN professions ON users.id = professions.user_id"+
		" SET users.age = ?, users.f_name = ?, users.l_name = ?"+
		" WHERE 1 AND users.id = ? AND professions.name = ?", query)
	assert.Equal(t, []any{18, "inserted", "user", 2, "builder"}, args)

	_, _, err = NewQuery(&stubDriver{}, "users").updateQuery(Values{})
	require.ErrorIs(t, err, ErrMissing)
}

func TestQuery_Delete(t *testing.T) {
	t.Parallel()
	query, args, err := NewQuery(&stubDriver{}, "users").Where("id", "=", 5).deleteQuery()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users WHERE 1 AND users.id = ?", query)
	assert.Equal(t, []any{5}, args)

	query, args, err = NewQuery(&stubDriver{}, "users").deleteQuery()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users WHERE 1", query)
	assert.Empty(t, args)

	query, args, err = NewQuery(&stubDriver{}, "users").
		InnerJoin("professions", "id", "user_id").
		Where("professions.name", "=", "cook").
		deleteQuery()
	require.NoError(t, err)
	assert.Equal(t, "DELETE users FROM users INNER JOIN professions ON users.id = professions.user_id"+
		" WHERE 1 AND professions.name = ?", query)
	assert.Equal(t, []any{"cook"}, args)
}

func TestQuery_SetOnce(t *testing.T) {
	t.Parallel()
	tests := map[string]func(*Query) *Query{
		"only":    func(q *Query) *Query { return q.Only("id").Only("id") },
		"orderBy": func(q *Query) *Query { return q.OrderBy("id", "asc").OrderBy("age", "desc") },
		"limit":   func(q *Query) *Query { return q.Limit(1).Limit(1) },
		"offset":  func(q *Query) *Query { return q.Offset(0).Offset(5) },
	}
	for clause, build := range tests {
		t.Run(clause, func(t *testing.T) {
			t.Parallel()
			stub := &stubDriver{}
			q := build(NewQuery(stub, "users"))
			require.ErrorIs(t, q.Err(), ErrAlreadySet)
			var verr *ValidationError
			require.ErrorAs(t, q.Err(), &verr)
			assert.Equal(t, clause, verr.Clause)

			_, err := q.Get(context.Background())
			require.ErrorIs(t, err, ErrAlreadySet)
			assert.Empty(t, stub.calls)
		})
	}
}

func TestQuery_SetOnceKeepsFirstValue(t *testing.T) {
	t.Parallel()
	q := NewQuery(&stubDriver{}, "users").Limit(3).Limit(7).OrderBy("id", "asc").OrderBy("age", "desc")
	require.Error(t, q.Err())
	assert.Equal(t, 3, *q.limit)
	assert.Equal(t, "users.id", q.order.field)
	assert.Equal(t, OrderAsc, q.order.direction)
}

func TestQuery_InvalidValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		build func(*Query) *Query
		want  error
	}{
		{"direction", func(q *Query) *Query { return q.OrderBy("id", "up") }, ErrInvalidDirection},
		{"empty direction", func(q *Query) *Query { return q.OrderBy("id", "") }, ErrInvalidDirection},
		{"negative limit", func(q *Query) *Query { return q.Limit(-1) }, ErrNegative},
		{"negative offset", func(q *Query) *Query { return q.Offset(-10) }, ErrNegative},
		{"empty where field", func(q *Query) *Query { return q.Where("", "=", 1) }, ErrMissing},
		{"empty comparison", func(q *Query) *Query { return q.Where("id", "", 1) }, ErrMissing},
		{"empty raw", func(q *Query) *Query { return q.WhereRaw("") }, ErrMissing},
		{"empty where in field", func(q *Query) *Query { return q.WhereIn("", 1) }, ErrMissing},
		{"empty join table", func(q *Query) *Query { return q.LeftJoin("", "id", "user_id") }, ErrMissing},
		{"empty join field", func(q *Query) *Query { return q.LeftJoin("professions", "", "user_id") }, ErrMissing},
		{"empty only", func(q *Query) *Query { return q.Only() }, ErrMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := tt.build(NewQuery(&stubDriver{}, "users"))
			require.ErrorIs(t, q.Err(), tt.want)
			assert.True(t, IsValidationError(q.Err()))
		})
	}
}

func TestQuery_FirstErrorWins(t *testing.T) {
	t.Parallel()
	q := NewQuery(&stubDriver{}, "users").OrderBy("id", "sideways").Limit(-1)
	require.ErrorIs(t, q.Err(), ErrInvalidDirection)
	assert.NotErrorIs(t, q.Err(), ErrNegative)
}

func TestNewQuery_Missing(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, NewQuery(nil, "users").Err(), ErrMissing)
	require.ErrorIs(t, NewQuery(&stubDriver{}, "").Err(), ErrMissing)
}

func TestQuery_Guards(t *testing.T) {
	t.Parallel()
	run := map[string]func(context.Context, *Query) error{
		"INSERT": func(ctx context.Context, q *Query) error {
			_, err := q.Create(ctx, Values{"age": 1}, false)
			return err
		},
		"UPDATE": func(ctx context.Context, q *Query) error {
			_, err := q.Update(ctx, Values{"age": 1})
			return err
		},
		"DELETE": func(ctx context.Context, q *Query) error {
			_, err := q.Delete(ctx)
			return err
		},
	}
	clauses := map[string]func(*Query) *Query{
		"only":    func(q *Query) *Query { return q.Only("id") },
		"orderBy": func(q *Query) *Query { return q.OrderBy("id", "asc") },
		"limit":   func(q *Query) *Query { return q.Limit(1) },
		"offset":  func(q *Query) *Query { return q.Offset(1) },
		"where":   func(q *Query) *Query { return q.Where("id", "=", 1) },
		"join":    func(q *Query) *Query { return q.LeftJoin("professions", "id", "user_id") },
	}
	allowed := map[string]map[string]bool{
		"INSERT": {},
		"UPDATE": {"where": true, "join": true},
		"DELETE": {"where": true, "join": true},
	}
	for kind, exec := range run {
		for clause, apply := range clauses {
			if allowed[kind][clause] {
				continue
			}
			t.Run(kind+"/"+clause, func(t *testing.T) {
				t.Parallel()
				stub := &stubDriver{}
				err := exec(context.Background(), apply(NewQuery(stub, "users")))
				require.ErrorIs(t, err, ErrForbidden)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, kind, verr.Op)
				assert.Equal(t, clause, verr.Clause)
				assert.Contains(t, err.Error(), clause)
				assert.Empty(t, stub.calls, "no statement may reach the driver")
			})
		}
	}
}

func TestQuery_GuardsAllowWhereAndJoin(t *testing.T) {
	t.Parallel()
	for _, s := range []statement{updateStatement, deleteStatement} {
		q := NewQuery(&stubDriver{}, "users").Where("id", "=", 1).LeftJoin("professions", "id", "user_id")
		assert.NoError(t, q.check(s), s.String())
	}
	q := NewQuery(&stubDriver{}, "users").Only("id").OrderBy("id", "asc").Limit(1).Offset(1).
		Where("id", ">", 1).LeftJoin("professions", "id", "user_id")
	assert.NoError(t, q.check(selectStatement))
}

func TestQuery_Clone(t *testing.T) {
	t.Parallel()
	q := NewQuery(&stubDriver{}, "users").Where("id", ">", 1).WhereIn("age", 23, 25).
		LeftJoin("professions", "id", "user_id").Only("users.id").OrderBy("id", "desc").Limit(2).Offset(4)
	c := q.Clone()
	c.Where("age", "<", 30)
	c.where[0].args[0] = 100

	query, args, err := q.selectQuery()
	require.NoError(t, err)
	assert.Equal(t, "SELECT users.id FROM users LEFT JOIN professions ON users.id = professions.user_id"+
		" WHERE 1 AND users.id > ? AND users.age IN (?, ?) ORDER BY users.id DESC LIMIT 2 OFFSET 4", query)
	assert.Equal(t, []any{1, 23, 25}, args)

	query, args, err = c.selectQuery()
	require.NoError(t, err)
	assert.Equal(t, "SELECT users.id FROM users LEFT JOIN professions ON users.id = professions.user_id"+
		" WHERE 1 AND users.id > ? AND users.age IN (?, ?) AND users.age < ? ORDER BY users.id DESC LIMIT 2 OFFSET 4", query)
	assert.Equal(t, []any{100, 23, 25, 30}, args)
}

func TestQuery_Scope(t *testing.T) {
	t.Parallel()
	q := NewQuery(&stubDriver{}, "users").Where("id", ">", 1).
		InnerJoin("professions", "id", "user_id").Only("users.id").OrderBy("id", "desc").Limit(2).Offset(4)
	query, args, err := q.scope().selectQuery("COUNT(*)")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM users INNER JOIN professions ON users.id = professions.user_id WHERE 1 AND users.id > ?", query)
	assert.Equal(t, []any{1}, args)

	s := q.scope()
	s.Where("age", "=", 1)
	assert.Len(t, q.where, 1, "scope must not alias the WHERE fragments")
}
