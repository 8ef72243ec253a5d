package service

import "errors"

// ErrInvalidInput reports a reconcile request that cannot be processed.
var ErrInvalidInput = errors.New("invalid input")
