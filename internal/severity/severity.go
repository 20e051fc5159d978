// Package severity provides the severity levels attached to issues reported
// while generating bindings.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of a generation issue.
type Severity int

const (
	// SeverityInfo marks a notice about a generation choice, e.g. an
	// undocumented parameter left out of the R documentation.
	SeverityInfo Severity = iota

	// SeverityWarning marks a likely customization mistake that did not stop
	// generation, e.g. a documentation override naming an unknown parameter.
	SeverityWarning

	// SeverityError marks a problem that makes the generated output unusable.
	SeverityError

	// SeverityCritical marks a module that could not be generated at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s >= other
}
