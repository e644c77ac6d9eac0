package gradestore

import "errors"

// Sentinel kinds for grade store errors.
var (
	ErrDataSource = errors.New("grade data source unavailable")
)
