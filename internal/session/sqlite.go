package session

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the bearer credential across runs in a small local
// database, the terminal-client analogue of browser-local token storage.
type SQLiteStore struct {
	db *sql.DB

	mu        sync.Mutex
	listeners []func(string)
}

// OpenSQLite opens (and if needed initializes) the credential database at
// path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential database: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS credentials (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    token TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize credential database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get() (string, error) {
	var token string
	err := s.db.QueryRow(`SELECT token FROM credentials WHERE id = 1`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading credential: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *SQLiteStore) Set(token string) error {
	_, err := s.db.Exec(`
		INSERT INTO credentials (id, token, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		token, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}
	s.notify(token)
	return nil
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing credential: %w", err)
	}
	s.notify("")
	return nil
}

func (s *SQLiteStore) OnChange(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *SQLiteStore) notify(token string) {
	s.mu.Lock()
	listeners := append([]func(string){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(token)
	}
}

var _ Store = (*SQLiteStore)(nil)
