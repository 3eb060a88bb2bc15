package model

import (
	"strconv"
	"strings"
)

// Path locates a node in the document tree as the sequence of child indices
// walked from the root. Re-applying a path to the root resolves back to the
// originating node, which lets reports reference nodes without owning them.
type Path []int

// String renders the path in slash-separated form, e.g. "/0/2/1".
// The root itself is "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, idx := range p {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}

// Compare orders paths lexicographically by child index.
// A prefix sorts before any of its extensions, matching document order for
// ancestor/descendant pairs.
func (p Path) Compare(other Path) int {
	n := len(p)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if p[i] != other[i] {
			if p[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	default:
		return 0
	}
}

// Violation is a single conformance defect located in the document tree.
//
// Design decision: Violations carry the node's path and tag rather than a
// node handle because reports outlive the document (they are serialized to
// JSON and the history database), and the path can be re-resolved against
// the tree when a caller needs the node itself.
type Violation struct {
	// Rule is the identifier of the rule that fired.
	Rule RuleID `json:"rule"`

	// Severity is the effective severity, after any policy overrides.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Message describes the specific defect in human-readable form.
	Message string `json:"message"`

	// Path locates the originating node from the root.
	Path Path `json:"path"`

	// Tag is the originating node's tag name, for display.
	Tag string `json:"tag,omitempty"`

	// Impact explains why this violation matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to fix the violation.
	Recommendation string `json:"recommendation,omitempty"`
}

// NewViolation creates a Violation for the given rule with catalog metadata
// filled in. The severity comes from the rule catalog; policy overrides are
// applied later by the runner.
func NewViolation(rule RuleID, path Path, tag, message string) Violation {
	info := GetRuleInfo(rule)
	return Violation{
		Rule:           rule,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Message:        message,
		Path:           path,
		Tag:            tag,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
	}
}
