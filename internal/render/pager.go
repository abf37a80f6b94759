package render

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Display writes text to stdout, routing it through `less -SR` when stdout
// is a terminal and the text does not fit it.
func Display(text string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Println(text)
		return nil
	}

	cols, termRows, err := term.GetSize(fd)
	if err != nil {
		fmt.Println(text)
		return nil
	}

	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > width {
			width = w
		}
	}

	if width > cols || len(lines) > termRows {
		return showInPager(text)
	}
	fmt.Println(text)
	return nil
}

func showInPager(text string) error {
	pager := exec.Command("less", "-SR")
	pager.Stdin = strings.NewReader(text)
	pager.Stdout = os.Stdout
	pager.Stderr = os.Stderr
	return pager.Run()
}
