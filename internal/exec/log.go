package exec

import (
	"fmt"
	"strings"
	"time"
)

// Entry records the outcome of one statement on one database. A Statement of
// zero marks a database-level failure (connection or commit).
type Entry struct {
	Database  string
	Statement int
	Output    string
	RowCount  int
	Duration  time.Duration
	Success   bool
	Err       string
}

// RunLog is the structured record of one multi-database run.
type RunLog struct {
	Query     string
	Databases []string
	StartedAt time.Time
	Entries   []Entry
	Elapsed   time.Duration
	TotalRows int
}

// Render produces the exportable text form of the log, headed by the server
// and user the run was executed against.
func (l *RunLog) Render(server, user string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Query Log for Server: %s ---\n", server)
	fmt.Fprintf(&b, "--- User: %s ---\n", user)
	fmt.Fprintf(&b, "--- Timestamp: %s ---\n\n", l.StartedAt.Format("2006-01-02 15:04:05"))

	for _, e := range l.Entries {
		b.WriteString(e.Output)
	}

	fmt.Fprintf(&b, "\nExecution time: %.2fs\n", l.Elapsed.Seconds())
	fmt.Fprintf(&b, "Total rows: %d\n", l.TotalRows)
	return b.String()
}
