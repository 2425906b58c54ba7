// Package storage provides SQLite-based persistence for the run journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/journal"
)

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			grid_size INTEGER NOT NULL,
			initial_length INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			events TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Saving the same ID twice replaces it.
func (s *Store) SaveRun(run journal.Run) error {
	events, err := json.Marshal(run.Events)
	if err != nil {
		return fmt.Errorf("storage: cannot encode events: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO runs
		 (id, seed, grid_size, initial_length, ticks, score, length, end_reason, started_at, ended_at, events)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Seed, run.GridSize, run.InitialLength, int64(run.Ticks), run.Score, run.Length,
		string(run.Reason), run.StartedAt.UnixMilli(), run.EndedAt.UnixMilli(), string(events),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

const runColumns = `id, seed, grid_size, initial_length, ticks, score, length, end_reason, started_at, ended_at, events`

// GetRun loads one run with its events.
func (s *Store) GetRun(id string) (journal.Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return journal.Run{}, err
	}
	return run, nil
}

// RecentRuns returns up to limit runs, most recently finished first.
func (s *Store) RecentRuns(limit int) ([]journal.Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []journal.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run. Deleting a missing run returns ErrNotFound.
func (s *Store) DeleteRun(id string) error {
	res, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (journal.Run, error) {
	var (
		run       journal.Run
		ticks     int64
		reason    string
		startedAt int64
		endedAt   int64
		events    string
	)
	err := sc.Scan(&run.ID, &run.Seed, &run.GridSize, &run.InitialLength, &ticks, &run.Score,
		&run.Length, &reason, &startedAt, &endedAt, &events)
	if errors.Is(err, sql.ErrNoRows) {
		return run, err
	}
	if err != nil {
		return run, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	run.Ticks = uint64(ticks)
	run.Reason = journal.EndReason(reason)
	run.StartedAt = time.UnixMilli(startedAt)
	run.EndedAt = time.UnixMilli(endedAt)

	if err := json.Unmarshal([]byte(events), &run.Events); err != nil {
		return run, fmt.Errorf("storage: cannot decode events of %s: %w", run.ID, err)
	}
	if err := journal.DecodeEvents(run.Events); err != nil {
		return run, fmt.Errorf("storage: run %s: %w", run.ID, err)
	}
	return run, nil
}
