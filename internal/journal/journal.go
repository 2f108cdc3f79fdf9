package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists build-run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded invocation of the hierarchy builder.
type Run struct {
	ID          string
	Source      string
	Destination string
	AssetsRoot  string
	StartedAt   time.Time
	FinishedAt  time.Time
	Nodes       int
	Warnings    int
}

// NodeRecord is the journal entry for one produced tree node.
type NodeRecord struct {
	Hierarchy string
	Path      string
	Role      string
	Matches   int
	Warnings  int
}

// Open creates (or opens) the journal database at path and initializes the
// schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the journal.
func (s *Store) Path() string {
	return s.path
}

// BeginRun records the start of a build and returns its identifier.
func (s *Store) BeginRun(ctx context.Context, source, destination, assetsRoot string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, source, destination, assets_root, started_at) VALUES (?, ?, ?, ?, ?)",
		id, source, destination, assetsRoot, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// FinishRun stamps a run with its completion time and counters.
func (s *Store) FinishRun(ctx context.Context, id string, nodes, warnings int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE runs SET finished_at = ?, nodes = ?, warnings = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339Nano), nodes, warnings, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrNotFound)
	}
	return nil
}

// RecordNode appends one node outcome to a run.
func (s *Store) RecordNode(ctx context.Context, runID string, node NodeRecord) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO run_nodes (run_id, hierarchy, path, role, matches, warnings) VALUES (?, ?, ?, ?, ?, ?)",
		runID, node.Hierarchy, node.Path, node.Role, node.Matches, node.Warnings,
	)
	if err != nil {
		return fmt.Errorf("record node %s: %w", node.Hierarchy, err)
	}
	return nil
}

// RecentRuns returns the newest runs first, capped at limit (0 means a
// default of 10).
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, source, destination, assets_root, started_at, finished_at, nodes, warnings FROM runs ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Source, &run.Destination, &run.AssetsRoot, &started, &finished, &run.Nodes, &run.Warnings); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunNodes returns the node records of a run in insertion order.
func (s *Store) RunNodes(ctx context.Context, runID string) ([]NodeRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT hierarchy, path, role, matches, warnings FROM run_nodes WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run nodes: %w", err)
	}
	defer rows.Close()

	var nodes []NodeRecord
	for rows.Next() {
		var node NodeRecord
		if err := rows.Scan(&node.Hierarchy, &node.Path, &node.Role, &node.Matches, &node.Warnings); err != nil {
			return nil, fmt.Errorf("scan run node: %w", err)
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

// ErrNotFound reports a missing run.
var ErrNotFound = errors.New("run not found")
