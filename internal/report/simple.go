package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/a11yscan/a11yscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting and severity indicators.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no violations are shown.
	showEmpty bool

	// verbose enables impact and recommendation details in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeViolations(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with check run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                    ACCESSIBILITY CONFORMANCE REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Target:       %s\n", report.Target))
	sb.WriteString(fmt.Sprintf("Checked:      %s\n", report.DateChecked.Format("2006-01-02 15:04:05 MST")))
	if len(report.PerformedChecks) > 0 {
		sb.WriteString(fmt.Sprintf("Checks Run:   %s\n", strings.Join(report.PerformedChecks, ", ")))
	}
	sb.WriteString("\n")
}

// writeSummary writes the severity summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  ERROR:    %d\n", report.ErrorCount))
	sb.WriteString(fmt.Sprintf("  WARNING:  %d\n", report.WarningCount))
	sb.WriteString(fmt.Sprintf("  INFO:     %d\n", report.InfoCount))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:    %d violations\n", report.TotalViolations()))
	sb.WriteString("\n")
}

// writeViolations writes all violations grouped by severity.
func (w *SimpleWriter) writeViolations(sb *strings.Builder, report *model.Report) {
	if !report.HasViolations() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("VIOLATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	severities := []model.Severity{
		model.SeverityError,
		model.SeverityWarning,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		violations := report.ViolationsBySeverity(severity)
		if len(violations) == 0 && !w.showEmpty {
			continue
		}
		w.writeViolationsForSeverity(sb, severity, violations)
	}
}

// writeViolationsForSeverity writes violations of a specific severity level.
func (w *SimpleWriter) writeViolationsForSeverity(sb *strings.Builder, severity model.Severity, violations []model.Violation) {
	indicator := w.getSeverityIndicator(severity)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, severity.String()))

	if len(violations) == 0 {
		sb.WriteString("  No violations\n\n")
		return
	}

	for _, v := range violations {
		sb.WriteString(fmt.Sprintf("  * %s: %s\n", v.Rule, v.Message))
		sb.WriteString(fmt.Sprintf("    Location: %s\n", formatLocation(v)))
		sb.WriteString(fmt.Sprintf("    Category: %s\n", ruleCategory(v)))
		if w.verbose {
			if v.Impact != "" {
				sb.WriteString(fmt.Sprintf("    Impact: %s\n", v.Impact))
			}
			if v.Recommendation != "" {
				sb.WriteString(fmt.Sprintf("    Recommendation: %s\n", v.Recommendation))
			}
		}
	}
	sb.WriteString("\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *SimpleWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityError:
		return "!!"
	case model.SeverityWarning:
		return "!"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by a11yscan\n")
	sb.WriteString("https://github.com/a11yscan/a11yscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
