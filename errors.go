package mysqlb

import (
	"errors"
	"fmt"
)

// Standard sentinel errors.
var (
	// ErrMissingOption is returned when a required configuration option is empty.
	ErrMissingOption = errors.New("option is required")

	// ErrInvalidOption is returned when a configuration option cannot be parsed.
	ErrInvalidOption = errors.New("option is invalid")
)

// ConfigError reports a problem with a single configuration option.
type ConfigError struct {
	Option string // Option name (e.g. "host")
	Err    error  // Underlying error
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("mysqlb: option %q: %s", e.Option, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e)
}
