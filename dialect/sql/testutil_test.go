package sql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/mysqlb/dialect"
)

// stubDriver records every statement it receives and fails them all.
type stubDriver struct {
	calls []string
}

var errStub = errors.New("stub: not executed")

func (s *stubDriver) Exec(_ context.Context, query string, _, _ any) error {
	s.calls = append(s.calls, query)
	return errStub
}

func (s *stubDriver) Query(_ context.Context, query string, _, _ any) error {
	s.calls = append(s.calls, query)
	return errStub
}

var _ dialect.ExecQuerier = (*stubDriver)(nil)

const usersSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	f_name TEXT,
	l_name TEXT,
	age INTEGER NOT NULL
);
CREATE TABLE professions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	name TEXT
);
INSERT INTO users (f_name, l_name, age) VALUES
	('Hohn', 'Snow', 25),
	('Peter', 'Jeneson', 23),
	('Olivia', 'Clarke', 23),
	('Julia', 'Rose', 23),
	('Irene', 'Williams', 23);
INSERT INTO professions (user_id, name) VALUES
	(1, 'engineer'),
	(2, 'builder'),
	(3, 'lawyer'),
	(4, 'doctor'),
	(5, 'cook');
`

// openUsers returns an in-memory SQLite driver holding the users and
// professions tables with five users.
func openUsers(t *testing.T) *Driver {
	t.Helper()
	drv, err := Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	// A single connection keeps every statement on the same in-memory database.
	drv.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { drv.Close() })
	_, err = drv.DB().Exec(usersSchema)
	require.NoError(t, err)
	return drv
}
