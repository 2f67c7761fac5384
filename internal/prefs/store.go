// Package prefs persists the two visitor preferences (theme and language).
//
// Values live in a SQLite table keyed by client id. If the database is not
// usable the store keeps working from memory for the rest of the process.
package prefs

import (
	"database/sql"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Preference keys.
const (
	KeyTheme    = "cv-theme"
	KeyLanguage = "cv-language"
)

// Prefs is the get/set view of one visitor's preferences.
type Prefs interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Store holds preferences for every visitor.
type Store struct {
	db *sql.DB

	mu       sync.Mutex
	mem      map[string]map[string]string
	degraded bool
}

// Open opens (or creates) the preference database at path. It never fails:
// when SQLite is unavailable the returned store is memory-only.
func Open(path string) *Store {
	s := NewMemory()

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		log.Printf("Preferences: could not open %s, using memory: %v", path, err)
		return s
	}

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS preferences (
		client_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (client_id, key)
	)`)
	if err != nil {
		log.Printf("Preferences: could not create table, using memory: %v", err)
		db.Close()
		return s
	}

	s.db = db
	s.degraded = false
	log.Printf("Preferences stored in %s", path)
	return s
}

// NewMemory returns a store that never touches disk.
func NewMemory() *Store {
	return &Store{
		mem:      make(map[string]map[string]string),
		degraded: true,
	}
}

// Close releases the database handle, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Scope returns the preferences of one client.
func (s *Store) Scope(clientID string) Prefs {
	return &scope{store: s, clientID: clientID}
}

// Prune removes preferences not written for longer than olderThan.
func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	if s.usingMemory() {
		return 0, nil
	}

	cutoff := time.Now().Add(-olderThan).UTC().Format("2006-01-02 15:04:05")
	result, err := s.db.Exec(`DELETE FROM preferences WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		log.Printf("Preferences cleanup: removed %d entries older than %s", rows, olderThan)
	}
	return rows, nil
}

func (s *Store) usingMemory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Store) degrade(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.degraded {
		log.Printf("Preferences: storage failed, falling back to memory: %v", err)
	}
	s.degraded = true
}

func (s *Store) memGet(clientID, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.mem[clientID][key]
	return v, ok
}

func (s *Store) memSet(clientID, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mem[clientID] == nil {
		s.mem[clientID] = make(map[string]string)
	}
	s.mem[clientID][key] = value
}

type scope struct {
	store    *Store
	clientID string
}

func (p *scope) Get(key string) (string, bool) {
	s := p.store
	if s.usingMemory() {
		return s.memGet(p.clientID, key)
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE client_id = ? AND key = ?`,
		p.clientID, key).Scan(&value)
	switch {
	case err == sql.ErrNoRows:
		return "", false
	case err != nil:
		s.degrade(err)
		return s.memGet(p.clientID, key)
	}
	return value, true
}

func (p *scope) Set(key, value string) {
	s := p.store
	// Memory always holds the latest write so a later fallback keeps it.
	s.memSet(p.clientID, key, value)
	if s.usingMemory() {
		return
	}

	_, err := s.db.Exec(`
		INSERT INTO preferences (client_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(client_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, p.clientID, key, value)
	if err != nil {
		s.degrade(err)
	}
}
