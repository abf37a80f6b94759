package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/takluyver/sqlite-glance/internal/completion"
	"github.com/takluyver/sqlite-glance/internal/db"
	"github.com/takluyver/sqlite-glance/internal/logger"
	"github.com/takluyver/sqlite-glance/internal/shell"
)

// CompletionParams contains parameters for the hidden __complete command.
type CompletionParams struct {
	Words    []string // full command line, program name first (COMP_WORDS)
	CWord    int      // index of the word being completed (COMP_CWORD)
	Hidden   bool     // include SQLite internal objects
	LogLevel string
	Out      io.Writer // defaults to stdout
}

// Completion resolves completion candidates for the current command line
// and prints them one per line. It never returns an error and never writes
// to the terminal beyond the candidates themselves: a failed completion
// degrades to "no suggestions" so the shell's display stays intact.
func Completion(params CompletionParams) error {
	log := logger.ForCompletion(params.LogLevel)
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	line := completion.CommandLine{Words: params.Words, CWord: params.CWord}
	cctx := line.Classify()

	log.Debug().
		Int("words", len(params.Words)).
		Int("cword", params.CWord).
		Int("kind", int(cctx.Kind)).
		Str("prefix", cctx.Prefix).
		Msg("Classified completion request")

	resolver := &completion.Resolver{
		Open:          db.OpenCatalog,
		IncludeHidden: params.Hidden,
	}
	candidates := resolver.Resolve(cctx)

	// Object names were already matched case-insensitively; flags still
	// narrow by the exact typed prefix before being handed to the shell.
	if cctx.Kind == completion.KindFlag {
		candidates = completion.FilterPrefix(candidates, cctx.Prefix)
	}

	log.Debug().
		Int("candidates", len(candidates)).
		Msg("Resolved candidates")

	for _, c := range candidates {
		fmt.Fprintln(out, shell.EscapeWord(c))
	}
	return nil
}
