// Package completion implements completion-candidate resolution for
// sqlite-glance. Given the partially typed command line it classifies what
// is being completed (a flag, the database file, or a table/view name) and
// produces the matching candidates. Everything here is stateless: each
// completion request builds, uses and discards its own values.
package completion

import "strings"

// Kind classifies the token under the cursor.
type Kind int

const (
	// KindNone means no candidates apply at the cursor position.
	KindNone Kind = iota
	// KindFlag means a flag/option is being completed.
	KindFlag
	// KindFilePath means the database file argument is being completed.
	// The shell's native filename completion handles this one.
	KindFilePath
	// KindObjectName means a table or view name is being completed.
	KindObjectName
)

// CommandLine is the shell's view of the current invocation: every typed
// token starting with the program name, plus the index of the token under
// the cursor. CWord may equal len(Words) when the user is starting a fresh
// empty token at the end of the line.
type CommandLine struct {
	Words []string
	CWord int
}

// Context is the classification of a completion request. DBPath and Prefix
// are only meaningful for KindObjectName; Prefix additionally carries the
// partial flag text for KindFlag.
type Context struct {
	Kind   Kind
	DBPath string
	Prefix string
}

// Classify determines what is being completed at the cursor.
//
// A token starting with "-" is always flag completion, regardless of
// position. Otherwise positional arguments before the cursor decide: none
// typed yet means the database file, exactly one means a table/view name in
// that file. The tool takes at most two positionals, so anything beyond
// that completes to nothing.
func (c CommandLine) Classify() Context {
	if len(c.Words) == 0 || c.CWord <= 0 || c.CWord > len(c.Words) {
		return Context{Kind: KindNone}
	}

	current := ""
	if c.CWord < len(c.Words) {
		current = c.Words[c.CWord]
	}

	if strings.HasPrefix(current, "-") {
		return Context{Kind: KindFlag, Prefix: current}
	}

	var positionals []string
	for i := 1; i < c.CWord; i++ {
		w := c.Words[i]
		if w == "" || strings.HasPrefix(w, "-") {
			continue
		}
		positionals = append(positionals, w)
	}

	switch len(positionals) {
	case 0:
		return Context{Kind: KindFilePath, Prefix: current}
	case 1:
		return Context{Kind: KindObjectName, DBPath: positionals[0], Prefix: current}
	default:
		return Context{Kind: KindNone}
	}
}
