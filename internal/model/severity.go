package model

// Severity represents how serious a conformance violation is.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed. The order matters: reports are sorted
// most severe first, so higher values sort earlier.
type Severity int

const (
	// SeverityInfo indicates advisory notices with no conformance impact.
	// Example: a role attribute that merely duplicates the element's
	// implicit native role. Nothing is broken, but the markup is redundant.
	SeverityInfo Severity = iota

	// SeverityWarning indicates issues that degrade the experience for
	// keyboard or assistive-technology users but do not make content
	// unreachable. Example: a positive tabindex that disrupts the natural
	// traversal order.
	SeverityWarning

	// SeverityError indicates failures of a WCAG success criterion or ARIA
	// requirement. Examples: insufficient contrast, a dangling ARIA
	// reference, an interactive widget that cannot receive keyboard focus.
	SeverityError
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a severity name to a Severity value.
// Matching is case-insensitive on the canonical names. The second return
// value reports whether the name was recognized.
func ParseSeverity(name string) (Severity, bool) {
	switch name {
	case "info", "INFO":
		return SeverityInfo, true
	case "warning", "WARNING":
		return SeverityWarning, true
	case "error", "ERROR":
		return SeverityError, true
	default:
		return SeverityInfo, false
	}
}
