package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrNoData = errors.New("no grade counts to chart")
)
