package csvio

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrEmptyInput      = errors.New("input has no header row")
	ErrMissingColumn   = errors.New("missing column")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrCardinality     = errors.New("entry count does not match roster rows")
)

// ColumnError names a required column absent from an input header.
type ColumnError struct {
	Input  string // "source" or "roster"
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Input, ErrMissingColumn, e.Column)
}

func (e *ColumnError) Unwrap() error {
	return ErrMissingColumn
}
