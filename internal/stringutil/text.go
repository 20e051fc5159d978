// Package stringutil provides the text reshaping helpers shared by the
// documentation and code emitters: wrapping, dedenting, and block prefixing.
package stringutil

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// Wrap word-wraps s so that no line exceeds width runes. Existing newlines are
// kept as hard breaks. Words longer than width are left intact on their own
// line. A non-positive width returns s unchanged.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.WrapString(s, uint(width))
}

// Dedent removes the longest run of leading whitespace shared by every
// non-blank line of s.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")
	margin := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
		if margin == "" {
			break
		}
	}
	if margin == "" {
		return s
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// ReformatBlock normalizes a multi-line block for emission: surrounding blank
// lines are dropped, the block is dedented, and every line gets prefix followed
// by indent spaces. When indentFirst is false the first line gets the prefix
// only, which produces hanging indents such as roxygen @param continuations.
// Trailing whitespace is trimmed from every line.
func ReformatBlock(text string, indent int, indentFirst bool, prefix string) string {
	text = strings.Trim(text, "\n")
	lines := strings.Split(Dedent(text), "\n")
	pad := strings.Repeat(" ", indent)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = strings.TrimRight(prefix, " \t")
			continue
		}
		ind := pad
		if i == 0 && !indentFirst {
			ind = ""
		}
		lines[i] = strings.TrimRight(prefix+ind+line, " \t")
	}
	return strings.Join(lines, "\n")
}

// Lines splits a block into lines, treating an empty block as a single empty line.
func Lines(block string) []string {
	return strings.Split(block, "\n")
}
