// Package errors defines the error types shared across the analysis engine.
//
// The engine distinguishes configuration errors (a bad column mapping supplied
// by the caller, detected before any aggregation runs) from everything else.
// Unparseable cell values are not errors at all; they are coerced to null at
// the derivation boundary.
package errors

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid engine configuration supplied by the caller,
// such as a column name that does not exist in the input table.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

// NewConfigError creates a configuration error for the given field.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// MissingColumn creates a configuration error for a column name that is not
// present in the input table.
func MissingColumn(field, column string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: fmt.Sprintf("column %q not found in input table", column),
	}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
