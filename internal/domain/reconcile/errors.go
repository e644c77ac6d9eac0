package reconcile

import "errors"

// Sentinel kinds for reconciliation errors.
var (
	ErrEmptyResult   = errors.New("no courses to reconcile")
	ErrNormalization = errors.New("normalization failed")
)
