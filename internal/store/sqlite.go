package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"nickandperla.net/lambdacalc/internal/programs"
	"nickandperla.net/lambdacalc/internal/token"
)

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite creates a new SQLite store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS definitions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			template TEXT NOT NULL,
			exchange INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS programs (
			name TEXT PRIMARY KEY,
			doc TEXT NOT NULL DEFAULT '',
			expression TEXT NOT NULL,
			args TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}

	// Check/set schema version (use unlocked versions since we're in init)
	version, err := s.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}

	switch version {
	case "":
		if err := s.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Definitions returns the stored definitions in insertion order.
func (s *SQLite) Definitions() ([]token.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT name, template, exchange FROM definitions ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []token.Entry
	for rows.Next() {
		var e token.Entry
		if err := rows.Scan(&e.Name, &e.Template, &e.Exchange); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PutDefinition stores a definition by name. An existing definition keeps its
// position in the load order.
func (s *SQLite) PutDefinition(e token.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO definitions (name, template, exchange) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET template = excluded.template, exchange = excluded.exchange
	`, e.Name, e.Template, e.Exchange)
	return err
}

// DeleteDefinition removes a definition by name.
func (s *SQLite) DeleteDefinition(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM definitions WHERE name = ?", name)
	return err
}

// Program retrieves a program by name.
func (s *SQLite) Program(name string) (*programs.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := programs.Program{Name: name}
	var args string
	err := s.db.QueryRow("SELECT doc, expression, args FROM programs WHERE name = ?", name).
		Scan(&p.Doc, &p.Expression, &args)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Args = strings.Fields(args)
	return &p, nil
}

// PutProgram stores a program by name.
func (s *SQLite) PutProgram(p programs.Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO programs (name, doc, expression, args) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			doc = excluded.doc, expression = excluded.expression, args = excluded.args
	`, p.Name, p.Doc, p.Expression, strings.Join(p.Args, " "))
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetMetadata retrieves a metadata value by key.
func (s *SQLite) GetMetadata(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getMetadataUnlocked(key)
}

// getMetadataUnlocked retrieves metadata without locking (caller must hold lock).
func (s *SQLite) getMetadataUnlocked(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// setMetadataUnlocked stores metadata without locking (caller must hold lock).
func (s *SQLite) setMetadataUnlocked(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
