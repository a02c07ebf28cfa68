package browser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestViewTruncatesWideNamesCleanly(t *testing.T) {
	m := New()
	m.SetSize(12, 10)
	m.SetDatabases([]string{strings.Repeat("é", 20)})

	view := m.View()
	if !utf8.ValidString(view) {
		t.Errorf("View() produced invalid UTF-8: %q", view)
	}
}

func TestSelection(t *testing.T) {
	m := New()
	m.SetDatabases([]string{"alpha", "beta", "gamma"})

	// Nothing selected initially.
	if got := m.Selected(); len(got) != 0 {
		t.Fatalf("Selected() = %v, want empty", got)
	}

	m.toggleSelect()
	m.cursor = 2
	m.toggleSelect()

	got := m.Selected()
	want := []string{"alpha", "gamma"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Selected() = %v, want %v", got, want)
	}

	m.toggleSelectAll()
	if !m.AllSelected() {
		t.Error("AllSelected() = false after select-all")
	}
	m.toggleSelectAll()
	if len(m.Selected()) != 0 {
		t.Error("second select-all should clear the selection")
	}
}
