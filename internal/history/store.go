// Package history persists bootstrap run reports to a local SQLite
// database so operators can compare environment state across runs. The
// journal is opt-in; when disabled, check results stay transient.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"slateprep/internal/bootstrap"
)

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS bootstrap_runs (
    id            TEXT PRIMARY KEY,
    started_at    TEXT NOT NULL,
    finished_at   TEXT NOT NULL,
    os            TEXT NOT NULL,
    interpreter   TEXT NOT NULL,
    ok_count      INTEGER NOT NULL,
    missing_count INTEGER NOT NULL,
    failed_count  INTEGER NOT NULL,
    results_json  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bootstrap_runs_started_at
    ON bootstrap_runs (started_at DESC);
`

// Open initializes or connects to the history database and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location backing the store.
func (s *Store) Path() string {
	return s.path
}

// RunSummary is one recorded bootstrap run.
type RunSummary struct {
	ID          string             `json:"id"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	OS          string             `json:"os"`
	Interpreter string             `json:"interpreter"`
	Counts      bootstrap.Counts   `json:"counts"`
	Results     []bootstrap.Result `json:"results,omitempty"`
}

// Record persists a completed report and returns the run ID.
func (s *Store) Record(ctx context.Context, report *bootstrap.Report) (string, error) {
	resultsJSON, err := json.Marshal(report.Results)
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}

	id := uuid.NewString()
	counts := report.Counts()
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO bootstrap_runs (
            id, started_at, finished_at, os, interpreter,
            ok_count, missing_count, failed_count, results_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.OS.String(),
		report.Interpreter.Command,
		counts.OK,
		counts.Missing,
		counts.Failed,
		string(resultsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first, including per-check
// results.
func (s *Store) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, os, interpreter,
            ok_count, missing_count, failed_count, results_json
        FROM bootstrap_runs
        ORDER BY started_at DESC
        LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var (
			summary               runRow
			startedAt, finishedAt string
			resultsJSON           string
		)
		if err := rows.Scan(
			&summary.id, &startedAt, &finishedAt, &summary.os, &summary.interpreter,
			&summary.okCount, &summary.missingCount, &summary.failedCount, &resultsJSON,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		parsed, err := summary.toSummary(startedAt, finishedAt, resultsJSON)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, parsed)
	}
	return summaries, rows.Err()
}

type runRow struct {
	id           string
	os           string
	interpreter  string
	okCount      int
	missingCount int
	failedCount  int
}

func (r runRow) toSummary(startedAt, finishedAt, resultsJSON string) (RunSummary, error) {
	started, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return RunSummary{}, fmt.Errorf("parse started_at: %w", err)
	}
	finished, err := time.Parse(time.RFC3339Nano, finishedAt)
	if err != nil {
		return RunSummary{}, fmt.Errorf("parse finished_at: %w", err)
	}
	var results []bootstrap.Result
	if err := json.Unmarshal([]byte(resultsJSON), &results); err != nil {
		return RunSummary{}, fmt.Errorf("unmarshal results: %w", err)
	}
	return RunSummary{
		ID:          r.id,
		StartedAt:   started,
		FinishedAt:  finished,
		OS:          r.os,
		Interpreter: r.interpreter,
		Counts: bootstrap.Counts{
			OK:      r.okCount,
			Missing: r.missingCount,
			Failed:  r.failedCount,
		},
		Results: results,
	}, nil
}
