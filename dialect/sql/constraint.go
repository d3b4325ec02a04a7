package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MySQL error numbers for constraint violations.
const (
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row
	mysqlCheckConstraintViolate = 3819
)

// IsConstraintError reports whether err is a constraint violation returned
// by the MySQL or SQLite driver. Queries return driver errors unchanged, so
// these helpers can be applied to any terminal method error.
func IsConstraintError(err error) bool {
	return IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// IsUniqueConstraintError reports whether err is a duplicate key violation.
func IsUniqueConstraintError(err error) bool {
	return mysqlNumber(err, mysqlDuplicateEntry) ||
		sqliteCode(err, "UNIQUE constraint failed", sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY)
}

// IsForeignKeyConstraintError reports whether err is a foreign key violation.
func IsForeignKeyConstraintError(err error) bool {
	return mysqlNumber(err, mysqlForeignKeyParent, mysqlForeignKeyChild) ||
		sqliteCode(err, "FOREIGN KEY constraint failed", sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY)
}

// IsCheckConstraintError reports whether err is a check constraint violation.
func IsCheckConstraintError(err error) bool {
	return mysqlNumber(err, mysqlCheckConstraintViolate) ||
		sqliteCode(err, "CHECK constraint failed", sqlite3.SQLITE_CONSTRAINT_CHECK)
}

func mysqlNumber(err error, numbers ...uint16) bool {
	var e *mysql.MySQLError
	if !errors.As(err, &e) {
		return false
	}
	for _, n := range numbers {
		if e.Number == n {
			return true
		}
	}
	return false
}

// sqliteCode matches the extended result code, or msg when the connection
// reports primary result codes only.
func sqliteCode(err error, msg string, codes ...int) bool {
	var e *sqlite.Error
	if !errors.As(err, &e) {
		return false
	}
	for _, c := range codes {
		if e.Code() == c {
			return true
		}
	}
	return strings.Contains(e.Error(), msg)
}
