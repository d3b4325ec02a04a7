package sql

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ValidationError.
var (
	// ErrAlreadySet is returned when a clause that can be set only once is set again.
	ErrAlreadySet = errors.New("could be set only once")

	// ErrForbidden is returned when a clause is not allowed in the chosen statement.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidDirection is returned for an order direction other than ASC or DESC.
	ErrInvalidDirection = errors.New("invalid order direction")

	// ErrNegative is returned for a negative limit, offset or page number.
	ErrNegative = errors.New("value must not be negative")

	// ErrMissing is returned when a required value was not provided.
	ErrMissing = errors.New("value is required")

	// ErrExecuted is returned when a terminal method is called on a query
	// that has already been executed.
	ErrExecuted = errors.New("query already executed")
)

// ValidationError reports a misuse of the builder. It is always returned
// before any statement reaches the database.
type ValidationError struct {
	Op     string // Statement or clause method (e.g. "select", "limit")
	Clause string // Offending clause (e.g. "orderBy")
	Err    error  // Underlying sentinel error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	if e.Clause != "" && e.Op != e.Clause {
		return fmt.Sprintf("mysqlb: %s: parameter %q %s", e.Op, e.Clause, e.Err)
	}
	return fmt.Sprintf("mysqlb: %s: %s", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

func validationError(op, clause string, err error) *ValidationError {
	return &ValidationError{Op: op, Clause: clause, Err: err}
}
