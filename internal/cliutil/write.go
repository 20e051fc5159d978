// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
)

// Level selects the color used by Colorize.
type Level int

const (
	// LevelInfo renders cyan.
	LevelInfo Level = iota
	// LevelWarning renders yellow.
	LevelWarning
	// LevelError renders bold red.
	LevelError
	// LevelSuccess renders green.
	LevelSuccess
)

// Colorize wraps s in the terminal color for level. Colors are dropped
// automatically when stdout is not a terminal or NO_COLOR is set.
func Colorize(level Level, s string) string {
	switch level {
	case LevelError:
		return errorColor.Sprint(s)
	case LevelWarning:
		return warningColor.Sprint(s)
	case LevelSuccess:
		return successColor.Sprint(s)
	default:
		return infoColor.Sprint(s)
	}
}

// DisableColor turns colored output off for the remainder of the process.
func DisableColor() {
	color.NoColor = true
}
