package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const dbFile = ".quiclick/store.db"

// SQLite is the durable Store backing the CLI. Each key holds one JSON
// snapshot row, written atomically; the engine's single-drain invariant
// makes per-key snapshots sufficient without a cross-key transaction
// protocol.
type SQLite struct {
	conn    *sql.DB
	baseDir string
	notifier
}

// Open opens an existing store database under baseDir.
func Open(baseDir string) (*SQLite, error) {
	dbPath := filepath.Join(baseDir, dbFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("store not found: run 'qc init' first")
	}
	return open(baseDir, dbPath)
}

// Initialize creates the store database under baseDir.
func Initialize(baseDir string) (*SQLite, error) {
	dbPath := filepath.Join(baseDir, dbFile)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return open(baseDir, dbPath)
}

func open(baseDir, dbPath string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// WAL allows concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{conn: conn, baseDir: baseDir}, nil
}

// NewWithConn wraps an existing database connection, creating the schema.
// Tests use it to run the store against an in-memory database.
func NewWithConn(conn *sql.DB) (*SQLite, error) {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// BaseDir returns the directory the store lives under.
func (s *SQLite) BaseDir() string {
	return s.baseDir
}

// Get decodes the stored value for key into v.
func (s *SQLite) Get(key Key, v any) (bool, error) {
	var raw string
	err := s.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, string(key)).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set replaces the value for key and notifies subscribers once the write
// has committed.
func (s *SQLite) Set(key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), string(raw))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	s.notify(key)
	return nil
}

// Subscribe registers fn for in-process change notifications.
func (s *SQLite) Subscribe(fn func(Key)) (cancel func()) {
	return s.subscribe(fn)
}
