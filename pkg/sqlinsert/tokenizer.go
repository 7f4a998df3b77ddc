package sqlinsert

import "strings"

// SplitValues splits the contents of a VALUES(...) list on top-level commas.
// A comma inside a single- or double-quoted span is not a split point; the
// span is closed by the same character that opened it and there is no escape
// handling, so a quote character cannot appear inside its own literal.
//
// Quote characters are kept in the returned tokens; stripping happens at the
// mapping stage. Each token is trimmed of surrounding whitespace. An empty
// input yields a single empty token, never zero tokens.
func SplitValues(s string) []string {
	var values []string
	var current strings.Builder
	inString := false
	var quote byte

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case !inString && (ch == '\'' || ch == '"'):
			inString = true
			quote = ch
		case inString && ch == quote:
			inString = false
			quote = 0
		case !inString && ch == ',':
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteByte(ch)
	}
	values = append(values, strings.TrimSpace(current.String()))

	return values
}
