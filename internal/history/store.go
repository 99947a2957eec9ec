// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     history
// Description: Persistent record of parse runs (SQLite and in-memory stores)
// Author:      msto63
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	moteerror "github.com/msto63/mote/foundation/core/error"
)

// Origin names the surface a run came from
type Origin string

const (
	OriginCLI     Origin = "cli"
	OriginGRPC    Origin = "grpc"
	OriginExplore Origin = "explore"
)

// Run is a single recorded tokenize or parse run
type Run struct {
	ID           string        `json:"id" yaml:"id"`
	Timestamp    time.Time     `json:"timestamp" yaml:"timestamp"`
	Origin       Origin        `json:"origin" yaml:"origin"`
	Operation    string        `json:"operation" yaml:"operation"`
	Name         string        `json:"name" yaml:"name"`
	Source       string        `json:"-" yaml:"-"`
	SourceHash   string        `json:"source_hash" yaml:"source_hash"`
	SourceLength int           `json:"source_length" yaml:"source_length"`
	OK           bool          `json:"ok" yaml:"ok"`
	ErrorCode    string        `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	ErrorOffset  int           `json:"error_offset" yaml:"error_offset"`
	Tokens       int           `json:"tokens" yaml:"tokens"`
	Nodes        int           `json:"nodes" yaml:"nodes"`
	Depth        int           `json:"depth" yaml:"depth"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
}

// Filter defines criteria for listing runs
type Filter struct {
	Origin       Origin
	Name         string
	OnlyFailures bool
	Since        time.Time
	Limit        int
}

// Stats summarizes the stored runs
type Stats struct {
	Total    int64            `json:"total" yaml:"total"`
	Failures int64            `json:"failures" yaml:"failures"`
	ByCode   map[string]int64 `json:"by_code" yaml:"by_code"`
	LastRun  time.Time        `json:"last_run" yaml:"last_run"`
}

// Store defines the interface for run persistence
type Store interface {
	Record(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, filter Filter) ([]*Run, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// HashSource returns the hex SHA-256 of a source text
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// prepare fills generated fields of a run before it is stored
func prepare(run *Run) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	run.Timestamp = run.Timestamp.UTC()
	if run.SourceHash == "" {
		run.SourceHash = HashSource(run.Source)
	}
	if run.SourceLength == 0 {
		run.SourceLength = len(run.Source)
	}
	if run.OK {
		run.ErrorOffset = -1
	}
}

func notFound(id string) error {
	return moteerror.Newf("run %s not found", id).
		WithCode(moteerror.CodeNotFound).
		WithOperation("history.get").
		WithDetail("id", id)
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// NewSQLiteStore creates a new SQLite-based run store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, moteerror.Wrap(err, "failed to create history directory").
			WithCode(moteerror.CodeDatabaseError).
			WithDetail("path", dir)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, moteerror.Wrap(err, "failed to open history database").
			WithCode(moteerror.CodeDatabaseError).
			WithDetail("path", cfg.Path)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, moteerror.Wrap(err, "failed to initialize history schema").
			WithCode(moteerror.CodeDatabaseError)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parse_runs (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		origin TEXT NOT NULL,
		operation TEXT NOT NULL,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		source_length INTEGER NOT NULL,
		ok INTEGER NOT NULL,
		error_code TEXT,
		error_message TEXT,
		error_offset INTEGER NOT NULL DEFAULT -1,
		tokens INTEGER NOT NULL DEFAULT 0,
		nodes INTEGER NOT NULL DEFAULT 0,
		depth INTEGER NOT NULL DEFAULT 0,
		duration_us INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_parse_runs_timestamp ON parse_runs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_parse_runs_origin ON parse_runs(origin);
	CREATE INDEX IF NOT EXISTS idx_parse_runs_ok ON parse_runs(ok);
	CREATE INDEX IF NOT EXISTS idx_parse_runs_hash ON parse_runs(source_hash);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run
func (s *SQLiteStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(run)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parse_runs (id, timestamp, origin, operation, name, source, source_hash, source_length,
			ok, error_code, error_message, error_offset, tokens, nodes, depth, duration_us)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Timestamp, string(run.Origin), run.Operation, run.Name, run.Source, run.SourceHash, run.SourceLength,
		run.OK, nullString(run.ErrorCode), nullString(run.ErrorMessage), run.ErrorOffset,
		run.Tokens, run.Nodes, run.Depth, run.Duration.Microseconds())

	if err != nil {
		return moteerror.Wrap(err, "failed to insert parse run").
			WithCode(moteerror.CodeDatabaseError).
			WithOperation("history.record")
	}

	return nil
}

const selectRun = `SELECT id, timestamp, origin, operation, name, source, source_hash, source_length,
	ok, error_code, error_message, error_offset, tokens, nodes, depth, duration_us FROM parse_runs`

// Get retrieves a single run by ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, moteerror.Wrap(err, "failed to read parse run").
			WithCode(moteerror.CodeDatabaseError).
			WithOperation("history.get")
	}
	return run, nil
}

// List retrieves runs matching filter, newest first
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRun + ` WHERE 1=1`
	var args []interface{}

	if filter.Origin != "" {
		query += " AND origin = ?"
		args = append(args, string(filter.Origin))
	}
	if filter.Name != "" {
		query += " AND name = ?"
		args = append(args, filter.Name)
	}
	if filter.OnlyFailures {
		query += " AND ok = 0"
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, moteerror.Wrap(err, "failed to query parse runs").
			WithCode(moteerror.CodeDatabaseError).
			WithOperation("history.list")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parse run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var origin string
	var errorCode, errorMessage sql.NullString
	var durationMicros int64

	if err := row.Scan(&run.ID, &run.Timestamp, &origin, &run.Operation, &run.Name, &run.Source,
		&run.SourceHash, &run.SourceLength, &run.OK, &errorCode, &errorMessage, &run.ErrorOffset,
		&run.Tokens, &run.Nodes, &run.Depth, &durationMicros); err != nil {
		return nil, err
	}

	run.Origin = Origin(origin)
	run.ErrorCode = errorCode.String
	run.ErrorMessage = errorMessage.String
	run.Duration = time.Duration(durationMicros) * time.Microsecond
	return &run, nil
}

// Stats returns run statistics
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByCode: make(map[string]int64)}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN ok = 0 THEN 1 ELSE 0 END), 0) FROM parse_runs`,
	).Scan(&stats.Total, &stats.Failures); err != nil {
		return nil, moteerror.Wrap(err, "failed to count parse runs").
			WithCode(moteerror.CodeDatabaseError).
			WithOperation("history.stats")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT error_code, COUNT(*) FROM parse_runs WHERE ok = 0 GROUP BY error_code`)
	if err != nil {
		return nil, moteerror.Wrap(err, "failed to group parse runs").
			WithCode(moteerror.CodeDatabaseError).
			WithOperation("history.stats")
	}
	defer rows.Close()
	for rows.Next() {
		var code sql.NullString
		var count int64
		if err := rows.Scan(&code, &count); err != nil {
			return nil, err
		}
		stats.ByCode[code.String] = count
	}

	var last sql.NullTime
	if err := s.db.QueryRowContext(ctx,
		`SELECT timestamp FROM parse_runs ORDER BY timestamp DESC LIMIT 1`,
	).Scan(&last); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if last.Valid {
		stats.LastRun = last.Time
	}

	return stats, nil
}

// Prune removes runs older than the specified duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM parse_runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, moteerror.Wrap(err, "failed to prune parse runs").
			WithCode(moteerror.CodeDatabaseError).
			WithOperation("history.prune")
	}
	return result.RowsAffected()
}

// Ping checks that the database is reachable
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// MemoryStore is an in-memory implementation for tests and for runs
// without a configured database
type MemoryStore struct {
	mu   sync.RWMutex
	runs []*Run
}

// NewMemoryStore creates a new in-memory run store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make([]*Run, 0)}
}

// Record stores a run
func (s *MemoryStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(run)
	stored := *run
	s.runs = append(s.runs, &stored)
	return nil
}

// Get retrieves a single run by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, run := range s.runs {
		if run.ID == id {
			stored := *run
			return &stored, nil
		}
	}
	return nil, notFound(id)
}

// List retrieves runs matching filter, newest first
func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Run
	for i := len(s.runs) - 1; i >= 0; i-- {
		run := s.runs[i]
		if filter.Origin != "" && run.Origin != filter.Origin {
			continue
		}
		if filter.Name != "" && run.Name != filter.Name {
			continue
		}
		if filter.OnlyFailures && run.OK {
			continue
		}
		if !filter.Since.IsZero() && run.Timestamp.Before(filter.Since) {
			continue
		}
		stored := *run
		results = append(results, &stored)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})

	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}
	return results, nil
}

// Stats returns run statistics
func (s *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByCode: make(map[string]int64)}
	for _, run := range s.runs {
		stats.Total++
		if !run.OK {
			stats.Failures++
			stats.ByCode[run.ErrorCode]++
		}
		if run.Timestamp.After(stats.LastRun) {
			stats.LastRun = run.Timestamp
		}
	}
	return stats, nil
}

// Prune removes runs older than the specified duration
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	var deleted int64

	kept := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		if run.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, run)
	}
	s.runs = kept
	return deleted, nil
}

// Ping always succeeds for the memory store
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
