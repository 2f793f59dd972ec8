package sweep

import (
	"errors"
	"fmt"
)

// Sentinel errors for sweep operations.
var (
	ErrNotDirectory    = errors.New("not a directory")
	ErrCrossDevice     = errors.New("crosses filesystem boundary")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrNoRoot          = errors.New("cannot determine directory to sweep")
)

// UsageError indicates bad arguments or missing required args (exit code 2).
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// NewUsageError wraps a message as a UsageError.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ConfigError indicates a configuration problem (exit code 3).
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps a message as a ConfigError.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}

// RemovalError records a single entry that could not be deleted.
type RemovalError struct {
	Path string
	Err  error
}

func (e *RemovalError) Error() string { return fmt.Sprintf("remove %s: %s", e.Path, e.Err) }
func (e *RemovalError) Unwrap() error { return e.Err }
