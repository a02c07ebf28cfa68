package database

import (
	"strconv"
	"time"
)

// TableType distinguishes base tables from views.
type TableType string

const (
	TableTypeBase TableType = "BASE TABLE"
	TableTypeView TableType = "VIEW"
)

// Table is a table or view within one database.
type Table struct {
	Name string
	Type TableType
}

// MaxDisplayRows caps how many rows of a result set are retained for display.
// Rows beyond the cap are counted but not kept.
const MaxDisplayRows = 1000

// StatementResult holds the outcome of a single executed statement.
type StatementResult struct {
	// Columns and Rows hold the result set, already stringified for
	// display. Rows never exceeds MaxDisplayRows entries.
	Columns []string
	Rows    [][]string

	// RowCount is the full result-set size, including rows beyond the
	// display cap. Zero for statements without a result set.
	RowCount int

	// RowsAffected reports modified rows for statements without a result set.
	RowsAffected int64

	// HasRows is true when the statement produced a result set, even an
	// empty one.
	HasRows bool

	// Truncated is true when RowCount exceeded MaxDisplayRows.
	Truncated bool

	Duration time.Duration
}

// Target identifies a server and the credentials used to reach it.
type Target struct {
	Host     string
	Port     int
	Username string
	Password string
	SSLMode  string
}

// Addr returns the host:port form of the target.
func (t Target) Addr() string {
	if t.Port <= 0 {
		return t.Host
	}
	return t.Host + ":" + strconv.Itoa(t.Port)
}
