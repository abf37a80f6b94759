package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		cword int
		want  Context
	}{
		{
			name:  "flag token",
			words: []string{"sqlite-glance", "-"},
			cword: 1,
			want:  Context{Kind: KindFlag, Prefix: "-"},
		},
		{
			name:  "flag after positionals",
			words: []string{"sqlite-glance", "data.db", "--h"},
			cword: 2,
			want:  Context{Kind: KindFlag, Prefix: "--h"},
		},
		{
			name:  "first positional is the database file",
			words: []string{"sqlite-glance", "my"},
			cword: 1,
			want:  Context{Kind: KindFilePath, Prefix: "my"},
		},
		{
			name:  "fresh word after program name",
			words: []string{"sqlite-glance"},
			cword: 1,
			want:  Context{Kind: KindFilePath, Prefix: ""},
		},
		{
			name:  "second positional is an object name",
			words: []string{"sqlite-glance", "data.db", "us"},
			cword: 2,
			want:  Context{Kind: KindObjectName, DBPath: "data.db", Prefix: "us"},
		},
		{
			name:  "fresh word after database path",
			words: []string{"sqlite-glance", "data.db"},
			cword: 2,
			want:  Context{Kind: KindObjectName, DBPath: "data.db", Prefix: ""},
		},
		{
			name:  "flags are skipped when counting positionals",
			words: []string{"sqlite-glance", "--hidden", "data.db", "or"},
			cword: 3,
			want:  Context{Kind: KindObjectName, DBPath: "data.db", Prefix: "or"},
		},
		{
			name:  "third positional completes to nothing",
			words: []string{"sqlite-glance", "data.db", "users", "x"},
			cword: 3,
			want:  Context{Kind: KindNone},
		},
		{
			name:  "cursor on the program name",
			words: []string{"sqlite-glance"},
			cword: 0,
			want:  Context{Kind: KindNone},
		},
		{
			name:  "cursor beyond the token list",
			words: []string{"sqlite-glance"},
			cword: 5,
			want:  Context{Kind: KindNone},
		},
		{
			name:  "empty command line",
			words: nil,
			cword: 0,
			want:  Context{Kind: KindNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommandLine{Words: tt.words, CWord: tt.cword}.Classify()
			assert.Equal(t, tt.want, got)
		})
	}
}
