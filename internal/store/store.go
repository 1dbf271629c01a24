package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns the LLM request event repository.
func (s *Store) EventRepo() *SQLEventRepo {
	return &SQLEventRepo{db: s.db}
}

// SessionRepo returns the interview session repository.
func (s *Store) SessionRepo() *SQLSessionRepo {
	return &SQLSessionRepo{db: s.db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS llm_requests (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     TEXT    NOT NULL,
		session_id    TEXT    NOT NULL DEFAULT '',
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_requests_purpose ON llm_requests(purpose)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_requests_session ON llm_requests(session_id)`,
	`CREATE TABLE IF NOT EXISTS interview_sessions (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		candidate_name TEXT NOT NULL,
		target_role    TEXT NOT NULL,
		started_at     TEXT NOT NULL,
		ended_at       TEXT NOT NULL,
		turn_count     INTEGER NOT NULL,
		grade          TEXT NOT NULL DEFAULT '',
		recommendation TEXT NOT NULL DEFAULT '',
		confidence     INTEGER NOT NULL DEFAULT 0,
		state_json     TEXT NOT NULL,
		report_json    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_interview_sessions_started ON interview_sessions(started_at)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. INTERVIEWER_DB environment variable
// 2. $XDG_DATA_HOME/interviewer/interviewer.db
// 3. ~/.local/share/interviewer/interviewer.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("INTERVIEWER_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "interviewer", "interviewer.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
