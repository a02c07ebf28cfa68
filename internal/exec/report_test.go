package exec

import (
	"errors"
	"strings"
	"testing"

	"github.com/franvera/fandb/internal/database"
)

func TestFormatStatementResult_Table(t *testing.T) {
	res := &database.StatementResult{
		Columns:  []string{"id", "name"},
		Rows:     [][]string{{"1", "alice"}, {"2", "bo"}},
		RowCount: 2,
		HasRows:  true,
	}

	got := FormatStatementResult(res, "appdb", 1)
	want := "\n=== Results from Query 1 on appdb ===\n" +
		"id | name \n" +
		"---+------\n" +
		"1  | alice\n" +
		"2  | bo   \n"

	if got != want {
		t.Errorf("FormatStatementResult() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatStatementResult_WideValues(t *testing.T) {
	res := &database.StatementResult{
		Columns:  []string{"n"},
		Rows:     [][]string{{"a long value"}},
		RowCount: 1,
		HasRows:  true,
	}

	got := FormatStatementResult(res, "db", 3)
	// Column width follows the widest value, not the header.
	if !strings.Contains(got, "n           \n") {
		t.Errorf("header not padded to value width:\n%q", got)
	}
	if !strings.Contains(got, "a long value\n") {
		t.Errorf("value row missing:\n%q", got)
	}
}

func TestFormatStatementResult_NoRows(t *testing.T) {
	res := &database.StatementResult{
		Columns: []string{"id"},
		HasRows: true,
	}

	got := FormatStatementResult(res, "appdb", 2)
	want := "\n=== Results from Query 2 on appdb ===\nNo rows returned\n"
	if got != want {
		t.Errorf("FormatStatementResult() = %q, want %q", got, want)
	}
}

func TestFormatStatementResult_RowsAffected(t *testing.T) {
	res := &database.StatementResult{
		RowsAffected: 7,
	}

	got := FormatStatementResult(res, "appdb", 4)
	want := "\n=== Query 4 executed on appdb ===\nRows affected: 7\n"
	if got != want {
		t.Errorf("FormatStatementResult() = %q, want %q", got, want)
	}
}

func TestFormatStatementResult_Truncated(t *testing.T) {
	res := &database.StatementResult{
		Columns:   []string{"id"},
		Rows:      [][]string{{"1"}, {"2"}},
		RowCount:  1500,
		HasRows:   true,
		Truncated: true,
	}

	got := FormatStatementResult(res, "db", 1)
	if !strings.Contains(got, "... 1498 more row(s) not shown") {
		t.Errorf("missing truncation note:\n%q", got)
	}
}

func TestFormatStatementError(t *testing.T) {
	got := FormatStatementError("appdb", 2, errors.New("syntax error"))
	want := "\nError in Query 2 on appdb: syntax error\n"
	if got != want {
		t.Errorf("FormatStatementError() = %q, want %q", got, want)
	}
}

func TestFormatConnectionError(t *testing.T) {
	got := FormatConnectionError("appdb", errors.New("refused"))
	want := "\nConnection error with appdb: refused\n"
	if got != want {
		t.Errorf("FormatConnectionError() = %q, want %q", got, want)
	}
}
