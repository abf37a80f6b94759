// Package shell generates the per-shell registration scripts that wire
// sqlite-glance completion into bash and zsh. The core resolution logic is
// shell-agnostic; each generator here is only a thin adapter that makes the
// shell call the hidden __complete command and present its output.
package shell

import (
	"fmt"
	"strings"
)

const (
	shellBash = "bash"
	shellZsh  = "zsh"
)

// CodeGenerator is an interface for shell-specific completion registration
// code.
type CodeGenerator interface {
	// Script returns the registration script for the given program name.
	Script(program string) string
	// Name returns the shell name (bash, zsh).
	Name() string
}

// BashCodeGenerator generates the bash registration script.
type BashCodeGenerator struct{}

// Name returns the shell name for bash.
func (b *BashCodeGenerator) Name() string {
	return shellBash
}

// Script returns the bash completion script for program.
func (b *BashCodeGenerator) Script(program string) string {
	return fmt.Sprintf(bashTemplate, program, funcName(program))
}

// ZshCodeGenerator generates the zsh registration script.
type ZshCodeGenerator struct{}

// Name returns the shell name for zsh.
func (z *ZshCodeGenerator) Name() string {
	return shellZsh
}

// Script returns the zsh completion script for program.
func (z *ZshCodeGenerator) Script(program string) string {
	return fmt.Sprintf(zshTemplate, program, funcName(program))
}

// NewCodeGenerator returns the generator for the given shell name.
func NewCodeGenerator(shell string) (CodeGenerator, error) {
	switch shell {
	case shellBash:
		return &BashCodeGenerator{}, nil
	case shellZsh:
		return &ZshCodeGenerator{}, nil
	default:
		return nil, fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}
}

// funcName derives a shell-function-safe identifier from a program name.
func funcName(program string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, program)
}
