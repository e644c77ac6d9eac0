package gradestore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avasisht/gradelens/internal/domain/model"
	"github.com/avasisht/gradelens/pkg/metrics"
)

// CSVStore loads grade records from a header-addressed CSV file. Columns
// may appear in any order; extra columns are ignored.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store reading from path. The file is opened on
// each Load, so edits between queries are picked up.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads the whole file into grade records.
func (s *CSVStore) Load(ctx context.Context) ([]model.GradeRecord, error) {
	start := time.Now()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDataSource, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrDataSource, err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var records []model.GradeRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row: %w", ErrDataSource, err)
		}
		rec, err := recordFromRow(idx, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	metrics.RecordStoreLoadLatency(float64(time.Since(start).Milliseconds()))
	return records, nil
}

// headerIndex maps the required column names to their positions.
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colYear, colSemester, colCourse, colGrade, colCount} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrDataSource, required)
		}
	}
	return idx, nil
}

// recordFromRow converts one CSV row, enforcing a non-negative Count.
func recordFromRow(idx map[string]int, row []string) (model.GradeRecord, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	count, err := strconv.Atoi(strings.TrimSpace(get(colCount)))
	if err != nil {
		return model.GradeRecord{}, fmt.Errorf("%w: count %q is not an integer", ErrDataSource, get(colCount))
	}
	if count < 0 {
		return model.GradeRecord{}, fmt.Errorf("%w: count %d is negative", ErrDataSource, count)
	}

	return model.GradeRecord{
		Year:     get(colYear),
		Semester: get(colSemester),
		Course:   get(colCourse),
		Grade:    get(colGrade),
		Count:    count,
	}, nil
}
