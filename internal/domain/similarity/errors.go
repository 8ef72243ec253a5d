package similarity

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownScorer = errors.New("unknown scorer")
)
