// ABOUTME: Run ledger operations for SQLite
// ABOUTME: Upserts run records and lists them newest first
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/samber/mo"

	"github.com/harper/abmodel/internal/models"
)

// RunStore persists run records
type RunStore struct {
	db *DB
}

// NewRunStore opens a run store at path
func NewRunStore(path string) (*RunStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &RunStore{db: db}, nil
}

// NewRunStoreInMemory creates an in-memory run store (for testing)
func NewRunStoreInMemory() (*RunStore, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, err
	}
	return &RunStore{db: db}, nil
}

// Close closes the underlying database
func (s *RunStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts or updates a run
func (s *RunStore) SaveRun(run *models.RunRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, input_key, output_key, bucket, species, state,
			error_category, error_message, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			species = excluded.species,
			state = excluded.state,
			error_category = excluded.error_category,
			error_message = excluded.error_message,
			finished_at = excluded.finished_at
	`, run.RunID, run.InputKey, run.OutputKey, run.Bucket, string(run.Species), string(run.State),
		run.ErrorCategory, run.ErrorMessage, formatTime(run.StartedAt), nullTime(run.FinishedAt))
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.RunID, err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *RunStore) GetRun(runID string) (mo.Option[*models.RunRecord], error) {
	row := s.db.QueryRow(`
		SELECT id, input_key, output_key, bucket, species, state,
			error_category, error_message, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return mo.None[*models.RunRecord](), nil
	}
	if err != nil {
		return mo.None[*models.RunRecord](), fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	return mo.Some(run), nil
}

// ListRuns returns up to limit runs, newest first
func (s *RunStore) ListRuns(limit int) ([]models.RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, input_key, output_key, bucket, species, state,
			error_category, error_message, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []models.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// timeLayout is fixed width so started_at sorts correctly as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*models.RunRecord, error) {
	var (
		run        models.RunRecord
		species    string
		state      string
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(&run.RunID, &run.InputKey, &run.OutputKey, &run.Bucket, &species, &state,
		&run.ErrorCategory, &run.ErrorMessage, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	run.Species = models.Species(species)
	run.State = models.RunState(state)
	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("run %s has bad started_at: %w", run.RunID, err)
	}
	if finishedAt.Valid {
		if run.FinishedAt, err = time.Parse(timeLayout, finishedAt.String); err != nil {
			return nil, fmt.Errorf("run %s has bad finished_at: %w", run.RunID, err)
		}
	}
	return &run, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(t), Valid: true}
}
