package db

import "strings"

// Minimal scanning over stored CREATE statements. sqlite_schema keeps the
// SQL verbatim, so pulling out view queries, virtual table modules and
// generated-column expressions only needs quote- and paren-aware keyword
// search, not a full SQL parser. Everything here is best effort: an empty
// result means "could not extract" and callers fall back gracefully.

// ViewQuery returns the SELECT behind a CREATE VIEW statement, or the
// empty string when create is not a view definition.
func ViewQuery(create string) string {
	if !strings.HasPrefix(strings.ToUpper(create), "CREATE VIEW") {
		return ""
	}
	idx := keywordIndex(create, "AS")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(create[idx+len("AS"):])
}

// GeneratedExpr returns the expression of a generated column, extracted
// from the table's CREATE statement.
func GeneratedExpr(create, column string) string {
	if !strings.HasPrefix(strings.ToUpper(create), "CREATE TABLE") {
		return ""
	}
	for _, def := range splitDefs(parenGroup(create)) {
		def = strings.TrimSpace(def)
		name, rest := firstToken(def)
		if !strings.EqualFold(name, column) {
			continue
		}
		if idx := keywordIndex(def[rest:], "AS"); idx >= 0 {
			return parenGroup(def[rest+idx:])
		}
		return ""
	}
	return ""
}

// virtualModule returns the module name of a CREATE VIRTUAL TABLE
// statement ("fts5", ...), or the empty string for anything else.
func virtualModule(create string) string {
	if !strings.HasPrefix(strings.ToUpper(create), "CREATE VIRTUAL TABLE") {
		return ""
	}
	idx := keywordIndex(create, "USING")
	if idx < 0 {
		return ""
	}
	name, _ := firstToken(strings.TrimSpace(create[idx+len("USING"):]))
	return name
}

// splitDefs splits the body of a CREATE TABLE statement into its
// top-level comma-separated definitions.
func splitDefs(body string) []string {
	var defs []string
	depth := 0
	quote := byte(0)
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '[':
			quote = ']'
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			defs = append(defs, body[start:i])
			start = i + 1
		}
	}
	return append(defs, body[start:])
}

// firstToken returns the leading identifier of s, unquoted, plus the
// number of bytes it consumed.
func firstToken(s string) (string, int) {
	if s == "" {
		return "", 0
	}
	switch s[0] {
	case '"', '`', '\'':
		q := s[0]
		var b strings.Builder
		i := 1
		for i < len(s) {
			if s[i] == q {
				// A doubled quote is an escaped quote character.
				if i+1 < len(s) && s[i+1] == q {
					b.WriteByte(q)
					i += 2
					continue
				}
				return b.String(), i + 1
			}
			b.WriteByte(s[i])
			i++
		}
		return b.String(), i
	case '[':
		if end := strings.IndexByte(s, ']'); end >= 0 {
			return s[1:end], end + 1
		}
		return s[1:], len(s)
	default:
		i := 0
		for i < len(s) && isIdentChar(s[i]) {
			i++
		}
		return s[:i], i
	}
}

// keywordIndex returns the byte offset of the first occurrence of kw as a
// standalone keyword outside quotes and parentheses, or -1.
func keywordIndex(s, kw string) int {
	depth := 0
	quote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '[':
			quote = ']'
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && keywordAt(s, i, kw):
			return i
		}
	}
	return -1
}

// keywordAt reports whether kw occurs at offset i of s with identifier
// boundaries on both sides.
func keywordAt(s string, i int, kw string) bool {
	if i+len(kw) > len(s) || !strings.EqualFold(s[i:i+len(kw)], kw) {
		return false
	}
	before := i == 0 || !isIdentChar(s[i-1])
	after := i+len(kw) == len(s) || !isIdentChar(s[i+len(kw)])
	return before && after
}

// parenGroup returns the contents of the first balanced parenthesized
// group outside quotes, trimmed, or the empty string when there is none.
func parenGroup(s string) string {
	depth := 0
	quote := byte(0)
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '[':
			quote = ']'
		case c == '(':
			if depth == 0 {
				start = i
			}
			depth++
		case c == ')':
			depth--
			if depth == 0 && start >= 0 {
				return strings.TrimSpace(s[start+1 : i])
			}
		}
	}
	return ""
}

// isIdentChar matches the bytes SQLite allows in unquoted identifiers.
func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '$' || c >= 0x80
}
