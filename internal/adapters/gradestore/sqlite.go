package gradestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/avasisht/gradelens/internal/domain/model"
	"github.com/avasisht/gradelens/pkg/metrics"
)

// SQLiteStore loads grade records from a local SQLite database. The grades
// table is populated once by cmd/import-grades so interactive queries skip
// the file parse.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %w", ErrDataSource, path, err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: pragma journal_mode: %w", ErrDataSource, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite: %w", ErrDataSource, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the grades table if the database is fresh.
func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS grades (
			year     TEXT NOT NULL,
			semester TEXT NOT NULL,
			course   TEXT NOT NULL,
			grade    TEXT NOT NULL,
			count    INTEGER NOT NULL CHECK (count >= 0),
			PRIMARY KEY (year, semester, course, grade)
		)
	`)
	if err != nil {
		return fmt.Errorf("%w: migrate: %w", ErrDataSource, err)
	}
	return nil
}

// Load reads the whole grades table.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.GradeRecord, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, `
		SELECT year, semester, course, grade, count
		FROM grades
		ORDER BY year, semester, course, grade
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query grades: %w", ErrDataSource, err)
	}
	defer rows.Close()

	var records []model.GradeRecord
	for rows.Next() {
		var rec model.GradeRecord
		if err := rows.Scan(&rec.Year, &rec.Semester, &rec.Course, &rec.Grade, &rec.Count); err != nil {
			return nil, fmt.Errorf("%w: scan grade row: %w", ErrDataSource, err)
		}
		if rec.Count < 0 {
			return nil, fmt.Errorf("%w: count %d is negative", ErrDataSource, rec.Count)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate grades: %w", ErrDataSource, err)
	}

	metrics.RecordStoreLoadLatency(float64(time.Since(start).Milliseconds()))
	return records, nil
}

// Import upserts records into the grades table inside one transaction.
func (s *SQLiteStore) Import(ctx context.Context, records []model.GradeRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin import: %w", ErrDataSource, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO grades (year, semester, course, grade, count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(year, semester, course, grade) DO UPDATE SET
		  count = excluded.count
	`)
	if err != nil {
		return fmt.Errorf("%w: prepare import: %w", ErrDataSource, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Year, rec.Semester, rec.Course, rec.Grade, rec.Count); err != nil {
			return fmt.Errorf("%w: insert grade row: %w", ErrDataSource, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit import: %w", ErrDataSource, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
