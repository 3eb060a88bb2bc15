package model

import (
	"sort"
	"time"
)

// Report is the result of one conformance check run over a document.
//
// Design decision: We use a single struct holding the deduplicated, sorted
// violation list plus per-severity counts rather than exposing raw check
// output, because every consumer (writers, the history database, the compare
// command) wants the same deterministic view. The report is finalized once
// and treated as immutable afterwards.
type Report struct {
	// Target identifies the checked document, typically a file path.
	Target string `json:"target"`

	// ContentHash is the SHA3-256 hash of the raw document bytes.
	// Two runs over identical content share a hash, which the history
	// database uses to tell content changes from rule-policy changes.
	ContentHash string `json:"content_hash,omitempty"`

	// DateChecked is the timestamp when the check was performed.
	DateChecked time.Time `json:"date_checked"`

	// ErrorCount is the number of error-severity violations.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning-severity violations.
	WarningCount int `json:"warning_count"`

	// InfoCount is the number of informational notices.
	InfoCount int `json:"info_count"`

	// Violations is the deduplicated violation list, sorted by
	// (severity descending, rule ID, path).
	Violations []Violation `json:"violations,omitempty"`

	// PerformedChecks lists the names of the checks that ran.
	PerformedChecks []string `json:"performed_checks,omitempty"`
}

// NewReport creates an empty report for the given target.
func NewReport(target string) *Report {
	return &Report{
		Target:      target,
		DateChecked: time.Now(),
		Violations:  make([]Violation, 0),
	}
}

// AddViolation appends a violation unless an exact duplicate (same rule and
// same path) is already present. When a duplicate exists, the more severe
// instance wins so a policy override on one check cannot mask another.
func (r *Report) AddViolation(v Violation) {
	for i, existing := range r.Violations {
		if existing.Rule == v.Rule && existing.Path.Compare(v.Path) == 0 {
			if v.Severity > existing.Severity {
				r.Violations[i] = v
			}
			return
		}
	}
	r.Violations = append(r.Violations, v)
}

// Finalize sorts the violations into the deterministic report order and
// recomputes the per-severity counts. It must be called after the last
// AddViolation; afterwards the report is immutable by convention.
func (r *Report) Finalize() {
	sort.SliceStable(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Path.Compare(b.Path) < 0
	})

	r.ErrorCount, r.WarningCount, r.InfoCount = 0, 0, 0
	for _, v := range r.Violations {
		switch v.Severity {
		case SeverityError:
			r.ErrorCount++
		case SeverityWarning:
			r.WarningCount++
		case SeverityInfo:
			r.InfoCount++
		}
	}
}

// Summary holds the headline counts for a report.
type Summary struct {
	// ErrorCount is the number of errors, including promoted warnings when
	// the warnings-as-errors policy is active.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warnings remaining after promotion.
	WarningCount int `json:"warning_count"`
}

// Summarize returns the error and warning counts. When treatWarningsAsErrors
// is set, warnings count as errors; informational notices are never promoted.
func (r *Report) Summarize(treatWarningsAsErrors bool) Summary {
	if treatWarningsAsErrors {
		return Summary{ErrorCount: r.ErrorCount + r.WarningCount}
	}
	return Summary{ErrorCount: r.ErrorCount, WarningCount: r.WarningCount}
}

// TotalViolations returns the total number of violations including notices.
func (r *Report) TotalViolations() int {
	return len(r.Violations)
}

// HasViolations returns true if the report contains any violations.
func (r *Report) HasViolations() bool {
	return len(r.Violations) > 0
}

// ViolationsBySeverity returns the violations with the given severity, in
// report order.
func (r *Report) ViolationsBySeverity(severity Severity) []Violation {
	var result []Violation
	for _, v := range r.Violations {
		if v.Severity == severity {
			result = append(result, v)
		}
	}
	return result
}
