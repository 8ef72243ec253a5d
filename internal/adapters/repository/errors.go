package repository

import "errors"

// Sentinel kinds for run history errors.
var (
	ErrRunNotFound = errors.New("run not found")
	ErrInvalidRun  = errors.New("invalid run")
)
