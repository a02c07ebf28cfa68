package exec

import "strings"

// SplitStatements breaks free-form SQL text into individual statements.
// Semicolons inside single-quoted strings, double-quoted identifiers and
// comments do not terminate a statement. Empty statements are dropped and a
// trailing statement without a terminator is kept.
func SplitStatements(sql string) []string {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
		stateLineComment
		stateBlockComment
	)

	var stmts []string
	var buf strings.Builder
	state := stateNormal

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			stmts = append(stmts, s)
		}
		buf.Reset()
	}

	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		var next byte
		if i+1 < len(sql) {
			next = sql[i+1]
		}

		switch state {
		case stateSingleQuote:
			buf.WriteByte(ch)
			if ch == '\'' {
				if next == '\'' {
					// escaped quote, stay in the string
					buf.WriteByte(next)
					i++
				} else {
					state = stateNormal
				}
			}

		case stateDoubleQuote:
			buf.WriteByte(ch)
			if ch == '"' {
				state = stateNormal
			}

		case stateLineComment:
			buf.WriteByte(ch)
			if ch == '\n' {
				state = stateNormal
			}

		case stateBlockComment:
			buf.WriteByte(ch)
			if ch == '*' && next == '/' {
				buf.WriteByte(next)
				i++
				state = stateNormal
			}

		default:
			switch {
			case ch == ';':
				flush()
			case ch == '\'':
				state = stateSingleQuote
				buf.WriteByte(ch)
			case ch == '"':
				state = stateDoubleQuote
				buf.WriteByte(ch)
			case ch == '-' && next == '-':
				state = stateLineComment
				buf.WriteString("--")
				i++
			case ch == '/' && next == '*':
				state = stateBlockComment
				buf.WriteString("/*")
				i++
			default:
				buf.WriteByte(ch)
			}
		}
	}
	flush()

	return stmts
}
