// Package store keeps a history of planning runs in SQLite.
//
// Each run row carries the planning parameters, a few headline numbers for
// listing, and the full plan as JSON so that a run can be re-rendered or
// served again without recomputation.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/signaltower/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// NoPath is stored in Run.Hops when no path was requested or found.
const NoPath = -1

// Run is one recorded planning run.
type Run struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Rows          int       `json:"rows"`
	Cols          int       `json:"cols"`
	BlockCoverage float64   `json:"block_coverage"`
	Seed          uint64    `json:"seed"`
	Radius        int       `json:"radius"`
	Towers        int       `json:"towers"`
	Hops          int       `json:"hops"`
	CoverageRatio float64   `json:"coverage_ratio"`

	// Plan is the run's plan in the pkg/io JSON format.
	Plan []byte `json:"-"`
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create store directory")
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "set busy_timeout")
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "apply schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run. A zero CreatedAt is set to the current time.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "run id is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, grid_rows, grid_cols, block_coverage, seed, radius,
		                  towers, hops, coverage_ratio, plan_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UnixMilli(), run.Rows, run.Cols, run.BlockCoverage,
		int64(run.Seed), run.Radius, run.Towers, run.Hops, run.CoverageRatio, run.Plan,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "record run %s", run.ID)
	}
	return nil
}

// Get returns the run with the given id, or NOT_FOUND.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, grid_rows, grid_cols, block_coverage, seed, radius,
		       towers, hops, coverage_ratio, plan_json
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeNotFound, "run %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load run %s", id)
	}
	return run, nil
}

// List returns up to limit runs, newest first. Plans are not loaded.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, grid_rows, grid_cols, block_coverage, seed, radius,
		       towers, hops, coverage_ratio, X''
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "scan run")
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

// Delete removes a run. Deleting a missing run is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete run %s", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run     Run
		created int64
		seed    int64
	)
	err := sc.Scan(&run.ID, &created, &run.Rows, &run.Cols, &run.BlockCoverage, &seed,
		&run.Radius, &run.Towers, &run.Hops, &run.CoverageRatio, &run.Plan)
	if err != nil {
		return nil, err
	}
	run.CreatedAt = time.UnixMilli(created)
	run.Seed = uint64(seed)
	return &run, nil
}

// String formats a run as a single history line.
func (r Run) String() string {
	hops := "-"
	if r.Hops != NoPath {
		hops = fmt.Sprint(r.Hops)
	}
	return fmt.Sprintf("%s  %s  %dx%d  R=%d  towers=%d  hops=%s  coverage=%.0f%%",
		r.ID, r.CreatedAt.Format(time.DateTime), r.Rows, r.Cols, r.Radius, r.Towers, hops, r.CoverageRatio*100)
}
