// Package parsererror defines the error types surfaced to users.
package parsererror

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by ImportParseError.
var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrInvalidEncoding = errors.New("input is not valid UTF-8")
)

// ImportParseError means the input could not be read as a CSV table. The
// ledger is never partially updated when it is returned.
type ImportParseError struct {
	Source string // file name or "<stream>"
	Line   int    // 1-based line reported by the CSV reader, 0 when unknown
	Err    error
}

func (e *ImportParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("import %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("import %s: %v", e.Source, e.Err)
}

func (e *ImportParseError) Unwrap() error {
	return e.Err
}

// IsImportParseError reports whether err is, or wraps, an ImportParseError.
func IsImportParseError(err error) bool {
	var target *ImportParseError
	return errors.As(err, &target)
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s=%q: %s", e.Key, e.Value, e.Reason)
}
