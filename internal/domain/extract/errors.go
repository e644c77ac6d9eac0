package extract

import "errors"

// Sentinel kinds for extraction errors.
var (
	ErrMalformedTable = errors.New("malformed course table")
)
