// Package gradestore loads the historical grade-distribution table.
//
// Loaders return the whole store unfiltered; professor filtering happens
// implicitly through the reconciliation join key. There is no partial-load
// recovery: any read or schema failure wraps ErrDataSource and aborts the
// current query.
package gradestore

import (
	"context"

	"github.com/avasisht/gradelens/internal/domain/model"
)

// Store supplies the full set of historical grade records.
type Store interface {
	Load(ctx context.Context) ([]model.GradeRecord, error)
}

// Expected column names in both backends.
const (
	colYear     = "Year"
	colSemester = "Semester"
	colCourse   = "Course"
	colGrade    = "Grade"
	colCount    = "Count"
)
