package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreAdd(t *testing.T) {
	s := &Store{}

	e := s.Add("SELECT 1")
	if e.ID == "" {
		t.Error("Add() entry has no ID")
	}
	if e.Timestamp.IsZero() {
		t.Error("Add() entry has no timestamp")
	}
	if got := len(s.Entries()); got != 1 {
		t.Fatalf("entries = %d, want 1", got)
	}
}

func TestStoreAddEvictsOldest(t *testing.T) {
	s := &Store{}
	for i := 0; i < MaxEntries+10; i++ {
		s.Add(fmt.Sprintf("SELECT %d", i))
	}

	entries := s.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("entries = %d, want %d", len(entries), MaxEntries)
	}
	if got, want := entries[0].Query, "SELECT 10"; got != want {
		t.Errorf("oldest retained entry = %q, want %q", got, want)
	}
	if got, want := entries[len(entries)-1].Query, fmt.Sprintf("SELECT %d", MaxEntries+9); got != want {
		t.Errorf("newest entry = %q, want %q", got, want)
	}
}

func TestStoreSaveAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	s := Open(path)
	s.Add("SELECT 1")
	s.Add("SELECT 2")
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened := Open(path)
	entries := reopened.Entries()
	if len(entries) != 2 {
		t.Fatalf("reopened entries = %d, want 2", len(entries))
	}
	if entries[0].Query != "SELECT 1" || entries[1].Query != "SELECT 2" {
		t.Errorf("reopened entries = %+v", entries)
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope.json"))
	if got := len(s.Entries()); got != 0 {
		t.Errorf("entries = %d, want 0", got)
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	if got := len(s.Entries()); got != 0 {
		t.Errorf("entries = %d, want 0 after corrupt file", got)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "short", query: "SELECT 1", want: "SELECT 1"},
		{name: "exactly 50", query: strings.Repeat("a", 50), want: strings.Repeat("a", 50)},
		{name: "long", query: strings.Repeat("a", 60), want: strings.Repeat("a", 47) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.query); got != tt.want {
				t.Errorf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}
