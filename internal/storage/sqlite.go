// Package storage provides SQLite-based persistence for training runs,
// per-generation summaries and best-genome snapshots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/jumpman/internal/genome"
)

// Run statuses.
const (
	StatusRunning  = "running"
	StatusFinished = "finished" // Target reached or generation limit hit
	StatusStopped  = "stopped"  // Interrupted by the user
)

// Store manages the SQLite database connection for training history.
type Store struct {
	db *sql.DB
}

// RunRecord represents one training run.
type RunRecord struct {
	ID          int64
	Level       string // Level file path
	LevelIndex  int
	Seed        int64
	Config      string // Effective configuration as YAML
	Status      string
	BestScore   float64
	Generations int
	CreatedAt   time.Time
	FinishedAt  time.Time // Zero while running
}

// GenerationRecord is the stored summary of one generation.
type GenerationRecord struct {
	RunID        int64
	Generation   int
	MaxScore     float64
	MeanScore    float64
	StdDevScore  float64
	MedianScore  float64
	MutationRate int
	GenomeLength int
	Elapsed      time.Duration
}

// SnapshotRecord is a stored best genome.
type SnapshotRecord struct {
	ID         int64
	RunID      int64
	Generation int
	Score      float64
	Genome     genome.Genome
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			level_index INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			best_score REAL NOT NULL DEFAULT 0,
			generations INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);

		CREATE TABLE IF NOT EXISTS generations (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			generation INTEGER NOT NULL,
			max_score REAL NOT NULL,
			mean_score REAL NOT NULL,
			stddev_score REAL NOT NULL,
			median_score REAL NOT NULL,
			mutation_rate INTEGER NOT NULL,
			genome_length INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			PRIMARY KEY (run_id, generation)
		);

		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			generation INTEGER NOT NULL,
			score REAL NOT NULL,
			genome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, generation);
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

// CreateRun records a new run in the running state.
// Returns the ID of the inserted record.
func (s *Store) CreateRun(run RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (level, level_index, seed, config, status)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Level, run.LevelIndex, run.Seed, run.Config, StatusRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// FinishRun stores the final outcome of a run.
func (s *Store) FinishRun(id int64, status string, bestScore float64, generations int) error {
	result, err := s.db.Exec(
		`UPDATE runs
		 SET status = ?, best_score = ?, generations = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		status, bestScore, generations, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: run %d not found", id)
	}
	return nil
}

// SaveGeneration records one generation summary.
func (s *Store) SaveGeneration(g GenerationRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO generations
		 (run_id, generation, max_score, mean_score, stddev_score, median_score, mutation_rate, genome_length, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.RunID,
		g.Generation,
		g.MaxScore,
		g.MeanScore,
		g.StdDevScore,
		g.MedianScore,
		g.MutationRate,
		g.GenomeLength,
		g.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save generation: %w", err)
	}
	return nil
}

// Generations retrieves every generation summary of a run in order.
func (s *Store) Generations(runID int64) ([]GenerationRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, generation, max_score, mean_score, stddev_score, median_score,
		        mutation_rate, genome_length, elapsed_ms
		 FROM generations
		 WHERE run_id = ?
		 ORDER BY generation`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	defer rows.Close()

	var records []GenerationRecord
	for rows.Next() {
		var g GenerationRecord
		var elapsedMS int64
		if err := rows.Scan(
			&g.RunID,
			&g.Generation,
			&g.MaxScore,
			&g.MeanScore,
			&g.StdDevScore,
			&g.MedianScore,
			&g.MutationRate,
			&g.GenomeLength,
			&elapsedMS,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		records = append(records, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SaveSnapshot records a best genome. The genome is stored in its base64
// text form. Returns the ID of the inserted record.
func (s *Store) SaveSnapshot(snap SnapshotRecord) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO snapshots (run_id, generation, score, genome) VALUES (?, ?, ?, ?)",
		snap.RunID, snap.Generation, snap.Score, genome.EncodeString(snap.Genome),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestSnapshot returns the highest-scoring snapshot of a run.
// Returns nil if the run has no snapshots.
func (s *Store) BestSnapshot(runID int64) (*SnapshotRecord, error) {
	return s.snapshot(
		`SELECT id, run_id, generation, score, genome, created_at
		 FROM snapshots
		 WHERE run_id = ?
		 ORDER BY score DESC, generation DESC
		 LIMIT 1`,
		runID,
	)
}

// LatestSnapshot returns the snapshot with the highest generation of a run.
// Returns nil if the run has no snapshots.
func (s *Store) LatestSnapshot(runID int64) (*SnapshotRecord, error) {
	return s.snapshot(
		`SELECT id, run_id, generation, score, genome, created_at
		 FROM snapshots
		 WHERE run_id = ?
		 ORDER BY generation DESC, id DESC
		 LIMIT 1`,
		runID,
	)
}

func (s *Store) snapshot(query string, args ...any) (*SnapshotRecord, error) {
	var snap SnapshotRecord
	var encoded string
	var createdAt any

	err := s.db.QueryRow(query, args...).Scan(
		&snap.ID,
		&snap.RunID,
		&snap.Generation,
		&snap.Score,
		&encoded,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	g, err := genome.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("storage: corrupt snapshot %d: %w", snap.ID, err)
	}
	snap.Genome = g
	snap.CreatedAt = parseTimestamp(createdAt)

	return &snap, nil
}

// Run retrieves a run by ID. Returns nil if it does not exist.
func (s *Store) Run(id int64) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, level, level_index, seed, config, status, best_score, generations, created_at, finished_at
		 FROM runs
		 WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return run, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level, level_index, seed, config, status, best_score, generations, created_at, finished_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var run RunRecord
	var createdAt, finishedAt any
	if err := row.Scan(
		&run.ID,
		&run.Level,
		&run.LevelIndex,
		&run.Seed,
		&run.Config,
		&run.Status,
		&run.BestScore,
		&run.Generations,
		&createdAt,
		&finishedAt,
	); err != nil {
		return nil, err
	}
	run.CreatedAt = parseTimestamp(createdAt)
	run.FinishedAt = parseTimestamp(finishedAt)
	return &run, nil
}

// parseTimestamp handles both time.Time and string datetimes; NULL yields
// the zero time.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
