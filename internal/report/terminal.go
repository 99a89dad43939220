package report

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	// DefaultColumns is assumed when the terminal width cannot be detected.
	DefaultColumns = 120

	// MinWrapWidth is the narrowest width progress lines are wrapped to.
	MinWrapWidth = 40
)

// TerminalColumns returns the width of the terminal attached to stdout.
// A positive integer in the COLUMNS environment variable takes precedence;
// DefaultColumns is returned when nothing can be detected.
func TerminalColumns() int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 { //nolint:gosec // File descriptors fit in int
		return cols
	}
	return DefaultColumns
}

// WrapWidth returns the line width used for a terminal of the given columns.
// One column is left free and the result is never below MinWrapWidth.
func WrapWidth(columns int) int {
	return max(MinWrapWidth, columns-1)
}
