package attendance

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrMalformedEntry   = errors.New("malformed entry")
)

// MalformedEntryError reports a roster entry that has no usable full name.
// Row is the zero-based position of the entry in the input sequence.
type MalformedEntryError struct {
	Row    int
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, ErrMalformedEntry, e.Reason)
}

func (e *MalformedEntryError) Unwrap() error {
	return ErrMalformedEntry
}
