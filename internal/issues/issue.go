// Package issues provides the issue type reported alongside generated bindings.
package issues

import (
	"fmt"

	"github.com/erraggy/rbindgen/internal/severity"
)

// Issue represents a single notice produced while generating one algorithm.
type Issue struct {
	// Path locates the issue, e.g. "gbm.params.ntrees" or "gbm.doc.params.foo"
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Algorithm is the model builder being generated
	Algorithm string
	// Parameter is the parameter involved, if any
	Parameter string
}

// String returns a formatted representation of the issue, prefixed with a
// symbol chosen by severity: "✗" for error or critical, "⚠" for warning and
// "ℹ" for info.
func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Symbol(), i.Path, i.Message)
}

// Symbol returns the single-character marker for the issue's severity.
func (i Issue) Symbol() string {
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		return "✗"
	case severity.SeverityWarning:
		return "⚠"
	case severity.SeverityInfo:
		return "ℹ"
	default:
		return "?"
	}
}

// Counts tallies issues by severity.
type Counts struct {
	Info     int
	Warning  int
	Error    int
	Critical int
}

// Count returns the per-severity totals of list.
func Count(list []Issue) Counts {
	var c Counts
	for _, issue := range list {
		switch issue.Severity {
		case severity.SeverityInfo:
			c.Info++
		case severity.SeverityWarning:
			c.Warning++
		case severity.SeverityError:
			c.Error++
		case severity.SeverityCritical:
			c.Critical++
		}
	}
	return c
}
