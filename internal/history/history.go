// Package history persists recent queries to a local JSON file.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// MaxEntries caps how many queries are retained; older entries are evicted.
const MaxEntries = 50

// Entry is one remembered query.
type Entry struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// Store keeps recent queries in memory and persists them as JSON.
type Store struct {
	path    string
	entries []Entry
}

// Open loads the history at path. A missing or corrupt file yields an empty
// store rather than an error.
func Open(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.entries = nil
	}
	return s
}

// Add appends a query with a fresh ID and timestamp, evicting the oldest
// entries beyond MaxEntries.
func (s *Store) Add(query string) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Query:     query,
		Timestamp: time.Now(),
	}
	s.entries = append(s.entries, e)
	if n := len(s.entries) - MaxEntries; n > 0 {
		s.entries = s.entries[n:]
	}
	return e
}

// Entries returns the stored queries, oldest first.
func (s *Store) Entries() []Entry {
	return s.entries
}

// Save writes the history to disk.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Preview returns a short single-line display form of a query.
func Preview(query string) string {
	if len(query) <= 50 {
		return query
	}
	return query[:47] + "..."
}
