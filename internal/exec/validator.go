package exec

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxQuerySize caps the accepted SQL text length (64 KiB).
const MaxQuerySize = 64 * 1024

// destructiveKeywords are the operations that modify or delete data. The
// trailing space on "update " avoids matching identifiers like "updated_at".
var destructiveKeywords = []string{
	"drop table",
	"drop database",
	"truncate table",
	"delete from",
	"alter table",
	"update ",
}

var (
	lineComment   = regexp.MustCompile(`--[^\n]*`)
	blockComment  = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	stringLiteral = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// ValidateQuery rejects empty or oversized SQL text.
func ValidateQuery(sql string) error {
	if strings.TrimSpace(sql) == "" {
		return fmt.Errorf("query is empty")
	}
	if len(sql) > MaxQuerySize {
		return fmt.Errorf("query exceeds %d bytes", MaxQuerySize)
	}
	return nil
}

// IsDestructive reports whether the SQL text contains an operation that may
// modify or delete data. Comments and string literals are stripped first so
// a literal like 'delete from logs' never triggers the gate.
func IsDestructive(sql string) bool {
	cleaned := lineComment.ReplaceAllString(sql, "")
	cleaned = blockComment.ReplaceAllString(cleaned, "")
	cleaned = stringLiteral.ReplaceAllString(cleaned, "''")

	lowered := strings.ToLower(cleaned)
	for _, kw := range destructiveKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
