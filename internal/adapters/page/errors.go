package page

import "errors"

// Sentinel kinds for page errors.
var (
	ErrNoTable = errors.New("no table in page source")
)
