// Package model contains domain models passed between pipeline stages.
package model

import "github.com/avasisht/gradelens/internal/domain/grade"

// CourseRecord is one course-offering row extracted from the remote
// listing table. Fields carry the raw page text; trimming and the numeric
// parse of Semester happen at join time in the reconciliation engine.
type CourseRecord struct {
	Year     string // academic year, e.g. "2023-24"
	Semester string // semester number as printed, e.g. "1"
	Course   string // course title, e.g. "CS101"
}

// GradeRecord is one historical grade-count row from the grade store.
// Loaders guarantee Count is non-negative; the remaining fields are raw
// store text normalized by the engine.
type GradeRecord struct {
	Year     string
	Semester string
	Course   string
	Grade    string
	Count    int
}

// ReconciledRow is one output row of the reconciliation engine, keyed by
// (Year, Semester, Course). Counts holds an entry for every allowed grade,
// zero where the join produced no match. Avg is nil when no point-carrying
// grade was counted.
type ReconciledRow struct {
	Year     string
	Semester int
	Course   string
	Counts   map[grade.Grade]int
	Total    int
	Avg      *float64
}

// Count returns the count for g, zero for grades outside the row's map.
func (r ReconciledRow) Count(g grade.Grade) int {
	return r.Counts[g]
}

// TableSnapshot is one raw capture of a rendered table: rows of cell text,
// header row included. The zero value stands in for "no table found".
type TableSnapshot struct {
	Rows [][]string
}

// Shape returns the snapshot's row and column counts. The column count is
// taken from the first row; a ragged tail does not change the shape.
func (t TableSnapshot) Shape() (rows, cols int) {
	if len(t.Rows) == 0 {
		return 0, 0
	}
	return len(t.Rows), len(t.Rows[0])
}

// Empty reports whether the snapshot has no rows at all.
func (t TableSnapshot) Empty() bool {
	return len(t.Rows) == 0
}
