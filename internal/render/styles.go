// Package render formats inspection output: styled names, value
// formatting, framed row tables and pager handling.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	objectNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	columnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	triggerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13"))

	boldStyle = lipgloss.NewStyle().Bold(true)
)

// NoColor disables all styling, for non-terminal output or color=false.
func NoColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ObjectName styles a table or view name.
func ObjectName(name string) string {
	return objectNameStyle.Render(name)
}

// ColumnName styles a column name.
func ColumnName(name string) string {
	return columnStyle.Render(name)
}

// Trigger styles a trigger name.
func Trigger(name string) string {
	return triggerStyle.Render(name)
}

// Bold renders text bold.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// ColumnList styles and joins column names with commas.
func ColumnList(names []string) string {
	styled := make([]string, len(names))
	for i, n := range names {
		styled[i] = ColumnName(n)
	}
	return strings.Join(styled, ", ")
}
