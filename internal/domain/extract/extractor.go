// Package extract turns raw table snapshots into course records.
package extract

import (
	"fmt"
	"strings"

	"github.com/avasisht/gradelens/internal/domain/model"
)

// Default header names as rendered by the course-listing page.
const (
	defaultYearHeader   = "ACADEMIC YEAR"
	defaultSemHeader    = "SEM"
	defaultCourseHeader = "COURSE NAME"
)

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithHeaders overrides the expected header names for the year, semester,
// and course columns. Empty names keep the defaults.
func WithHeaders(year, sem, course string) Option {
	return func(e *Extractor) {
		if year != "" {
			e.yearHeader = year
		}
		if sem != "" {
			e.semHeader = sem
		}
		if course != "" {
			e.courseHeader = course
		}
	}
}

// Extractor selects the (Year, Semester, Course) columns out of a raw
// snapshot whose first row is the header row.
type Extractor struct {
	yearHeader   string
	semHeader    string
	courseHeader string
}

// New creates an Extractor with configuration options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		yearHeader:   defaultYearHeader,
		semHeader:    defaultSemHeader,
		courseHeader: defaultCourseHeader,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Courses parses one snapshot into course records, preserving table row
// order. Row 0 must be a header row naming the three expected columns;
// otherwise ErrMalformedTable is returned. All other columns are dropped.
// Data rows too short to cover the selected columns are skipped.
func (e *Extractor) Courses(snapshot model.TableSnapshot) ([]model.CourseRecord, error) {
	if snapshot.Empty() {
		return nil, fmt.Errorf("%w: snapshot has no rows", ErrMalformedTable)
	}

	header := snapshot.Rows[0]
	yearIdx, err := columnIndex(header, e.yearHeader)
	if err != nil {
		return nil, err
	}
	semIdx, err := columnIndex(header, e.semHeader)
	if err != nil {
		return nil, err
	}
	courseIdx, err := columnIndex(header, e.courseHeader)
	if err != nil {
		return nil, err
	}

	records := make([]model.CourseRecord, 0, len(snapshot.Rows)-1)
	for _, row := range snapshot.Rows[1:] {
		if len(row) <= yearIdx || len(row) <= semIdx || len(row) <= courseIdx {
			continue
		}
		records = append(records, model.CourseRecord{
			Year:     row[yearIdx],
			Semester: row[semIdx],
			Course:   row[courseIdx],
		})
	}
	return records, nil
}

// columnIndex finds the position of name in the header row. Matching is
// case-insensitive on trimmed cell text.
func columnIndex(header []string, name string) (int, error) {
	for i, cell := range header {
		if strings.EqualFold(strings.TrimSpace(cell), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: header %q not found", ErrMalformedTable, name)
}
