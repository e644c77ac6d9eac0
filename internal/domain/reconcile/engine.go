// Package reconcile joins extracted courses against historical grade
// records and pivots the result into one row per course offering.
package reconcile

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avasisht/gradelens/internal/domain/grade"
	"github.com/avasisht/gradelens/internal/domain/model"
	"github.com/avasisht/gradelens/pkg/metrics"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithGradeFilter controls whether grade records outside the allowed
// enumeration are dropped before the join. Enabled by default.
func WithGradeFilter(enabled bool) Option {
	return func(e *Engine) {
		e.filterGrades = enabled
	}
}

// Engine computes reconciled grade distributions.
type Engine struct {
	filterGrades bool
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		filterGrades: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// key uniquely identifies one reconciled row.
type key struct {
	Year     string
	Semester int
	Course   string
}

// Reconcile left-joins courses with grades on (Year, Semester, Course),
// pivots grade counts into one column per allowed grade, and computes the
// weighted average and total per row. Rows come back sorted ascending by
// key. An empty course input returns ErrEmptyResult; a non-numeric
// semester on either side returns ErrNormalization.
func (e *Engine) Reconcile(ctx context.Context, courses []model.CourseRecord, grades []model.GradeRecord) ([]model.ReconciledRow, error) {
	if len(courses) == 0 {
		return nil, ErrEmptyResult
	}
	start := time.Now()

	keys, err := normalizeCourses(courses)
	if err != nil {
		return nil, err
	}

	index, err := e.indexGrades(grades)
	if err != nil {
		return nil, err
	}

	// Pivot: one row per distinct key, every allowed grade present even
	// when nothing matched across the whole result set.
	rows := make([]model.ReconciledRow, 0, len(keys))
	for _, k := range keys {
		counts := make(map[grade.Grade]int, len(grade.Canonical()))
		for _, g := range grade.Canonical() {
			counts[g] = 0
		}
		for g, n := range index[k] {
			counts[g] += n
		}
		rows = append(rows, reconciledRow(k, counts))
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		if rows[i].Semester != rows[j].Semester {
			return rows[i].Semester < rows[j].Semester
		}
		return rows[i].Course < rows[j].Course
	})

	metrics.RecordRowsReconciled(len(rows))
	metrics.RecordReconcileLatency(float64(time.Since(start).Milliseconds()))
	return rows, nil
}

// normalizeCourses trims and parses one query's course records into join
// keys, deduplicating while preserving first-seen order.
func normalizeCourses(courses []model.CourseRecord) ([]key, error) {
	keys := make([]key, 0, len(courses))
	seen := make(map[key]struct{}, len(courses))
	for _, c := range courses {
		sem, err := parseSemester(c.Semester)
		if err != nil {
			return nil, err
		}
		k := key{
			Year:     strings.TrimSpace(c.Year),
			Semester: sem,
			Course:   strings.TrimSpace(c.Course),
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys, nil
}

// indexGrades normalizes the full grade table into per-key grade counts.
func (e *Engine) indexGrades(grades []model.GradeRecord) (map[key]map[grade.Grade]int, error) {
	index := make(map[key]map[grade.Grade]int)
	for _, r := range grades {
		g, allowed := grade.Parse(r.Grade)
		if !allowed {
			if e.filterGrades {
				continue
			}
			// Unfiltered mode still cannot pivot an unknown column.
			return nil, fmt.Errorf("%w: unknown grade %q", ErrNormalization, r.Grade)
		}
		sem, err := parseSemester(r.Semester)
		if err != nil {
			return nil, err
		}
		k := key{
			Year:     strings.TrimSpace(r.Year),
			Semester: sem,
			Course:   strings.TrimSpace(r.Course),
		}
		if index[k] == nil {
			index[k] = make(map[grade.Grade]int)
		}
		index[k][g] += r.Count
	}
	return index, nil
}

// reconciledRow computes the total and weighted average for one pivoted row.
// S and X count toward the total but are excluded from both sides of the
// average; a zero denominator leaves Avg nil.
func reconciledRow(k key, counts map[grade.Grade]int) model.ReconciledRow {
	row := model.ReconciledRow{
		Year:     k.Year,
		Semester: k.Semester,
		Course:   k.Course,
		Counts:   counts,
	}

	var weightedSum float64
	var weightedCount int
	for _, g := range grade.Canonical() {
		n := counts[g]
		row.Total += n
		if pts, ok := grade.Points(g); ok {
			weightedSum += float64(n) * pts
			weightedCount += n
		}
	}
	if weightedCount > 0 {
		avg := math.Round(weightedSum/float64(weightedCount)*100) / 100
		row.Avg = &avg
	}
	return row
}

// parseSemester parses a semester cell as a base-10 integer.
func parseSemester(s string) (int, error) {
	sem, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: semester %q is not numeric", ErrNormalization, s)
	}
	return sem, nil
}
