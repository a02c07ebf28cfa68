package exec

import (
	"fmt"
	"strings"

	"github.com/franvera/fandb/internal/database"
)

// FormatStatementResult renders one statement outcome as a console block.
// Result sets become a padded text table; statements without a result set
// report their affected-row count.
func FormatStatementResult(res *database.StatementResult, db string, num int) string {
	if !res.HasRows {
		return fmt.Sprintf("\n=== Query %d executed on %s ===\nRows affected: %d\n",
			num, db, res.RowsAffected)
	}
	if res.RowCount == 0 {
		return fmt.Sprintf("\n=== Results from Query %d on %s ===\nNo rows returned\n",
			num, db)
	}

	widths := columnWidths(res.Columns, res.Rows)

	var b strings.Builder
	fmt.Fprintf(&b, "\n=== Results from Query %d on %s ===\n", num, db)

	cells := make([]string, len(res.Columns))
	for i, name := range res.Columns {
		cells[i] = pad(name, widths[i])
	}
	b.WriteString(strings.Join(cells, " | "))
	b.WriteByte('\n')

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(seps, "-+-"))
	b.WriteByte('\n')

	for _, row := range res.Rows {
		cells = cells[:0]
		for i, v := range row {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			cells = append(cells, pad(v, w))
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteByte('\n')
	}

	if res.Truncated {
		fmt.Fprintf(&b, "... %d more row(s) not shown\n", res.RowCount-len(res.Rows))
	}
	return b.String()
}

// FormatStatementError renders a statement-level failure.
func FormatStatementError(db string, num int, err error) string {
	return fmt.Sprintf("\nError in Query %d on %s: %v\n", num, db, err)
}

// FormatConnectionError renders a database-level failure.
func FormatConnectionError(db string, err error) string {
	return fmt.Sprintf("\nConnection error with %s: %v\n", db, err)
}

// columnWidths returns per-column display widths covering headers and values.
func columnWidths(columns []string, rows [][]string) []int {
	widths := make([]int, len(columns))
	for i, name := range columns {
		widths[i] = len(name)
	}
	for _, row := range rows {
		for i, v := range row {
			if i < len(widths) && len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}
	return widths
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
