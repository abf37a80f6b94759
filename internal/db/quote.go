package db

import "strings"

// sqliteKeywords is the reserved word list from the SQLite documentation.
// Names colliding with a keyword must be double-quoted in generated SQL.
var sqliteKeywords = map[string]struct{}{}

func init() {
	for _, kw := range strings.Fields(`
		abort action add after all alter always analyze and as asc attach
		autoincrement before begin between by cascade case cast check
		collate column commit conflict constraint create cross current
		current_date current_time current_timestamp database default
		deferrable deferred delete desc detach distinct do drop each else
		end escape except exclude exclusive exists explain fail filter
		first following for foreign from full generated glob group groups
		having if ignore immediate in index indexed initially inner insert
		instead intersect into is isnull join key last left like limit
		match materialized natural no not nothing notnull null nulls of
		offset on or order others outer over partition plan pragma
		preceding primary query raise range recursive references regexp
		reindex release rename replace restrict returning right rollback
		row rows savepoint select set table temp temporary then ties to
		transaction trigger unbounded union unique update using vacuum
		values view virtual when where window with without`) {
		sqliteKeywords[kw] = struct{}{}
	}
}

// QuoteName renders an identifier for use in SQL. Plain identifiers pass
// through untouched; anything else (keywords, spaces, quotes, leading
// digits) is wrapped in double quotes with embedded quotes doubled.
func QuoteName(name string) string {
	if isPlainIdentifier(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	if _, reserved := sqliteKeywords[strings.ToLower(name)]; reserved {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
