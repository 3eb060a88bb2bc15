package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/a11yscan/a11yscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing, for example as a
// CI job summary.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeViolations(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with check run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Accessibility Conformance Report")
	md.PlainText("")

	rows := [][]string{
		{"Target", "`" + report.Target + "`"},
		{"Checked", report.DateChecked.Format("2006-01-02 15:04:05 MST")},
		{"Checks Run", strconv.Itoa(len(report.PerformedChecks))},
	}
	if report.ContentHash != "" {
		rows = append(rows, []string{"Content Hash", "`" + truncateString(report.ContentHash, 19) + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Error", strconv.Itoa(report.ErrorCount)},
			{"🟡 Warning", strconv.Itoa(report.WarningCount)},
			{"⚪ Info", strconv.Itoa(report.InfoCount)},
			{"**Total**", "**" + strconv.Itoa(report.TotalViolations()) + "**"},
		},
	})
	md.PlainText("")

	if report.HasViolations() {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Violation Severity Distribution"),
		piechart.WithShowData(true),
	)

	if report.ErrorCount > 0 {
		chart.LabelAndIntValue("Error", uint64(report.ErrorCount))
	}
	if report.WarningCount > 0 {
		chart.LabelAndIntValue("Warning", uint64(report.WarningCount))
	}
	if report.InfoCount > 0 {
		chart.LabelAndIntValue("Info", uint64(report.InfoCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case report.ErrorCount > 0:
		md.Cautionf(
			"Conformance errors detected! %d error(s) block assistive-technology users.",
			report.ErrorCount,
		)
	case report.WarningCount > 0:
		md.Warningf(
			"%d warning(s) found. These degrade the experience and should be addressed.",
			report.WarningCount,
		)
	case report.TotalViolations() > 0:
		md.Note("Only informational notices detected.")
	default:
		md.Tip("No conformance issues detected.")
	}
	md.PlainText("")
}

// writeViolations writes all violations grouped by severity.
func (w *MarkdownWriter) writeViolations(md *markdown.Markdown, report *model.Report) {
	md.H2("Violations")
	md.PlainText("")

	if !report.HasViolations() {
		md.PlainText("No violations detected.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityError, "### 🔴 Error"},
		{model.SeverityWarning, "### 🟡 Warning"},
		{model.SeverityInfo, "### ⚪ Info"},
	}

	for _, sev := range severities {
		violations := report.ViolationsBySeverity(sev.level)
		if len(violations) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeViolationsTable(md, violations)
	}
}

// writeViolationsTable writes a table of violations with details.
func (w *MarkdownWriter) writeViolationsTable(md *markdown.Markdown, violations []model.Violation) {
	headers := []string{"Rule", "Category", "Location", "Message"}

	rows := make([][]string, len(violations))
	for i, v := range violations {
		rows[i] = []string{
			string(v.Rule),
			ruleCategory(v),
			"`" + formatLocation(v) + "`",
			truncateString(v.Message, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Remediation guidance folds away to keep the tables scannable.
	for _, v := range violations {
		if v.Recommendation != "" {
			md.Details(string(v.Rule)+" at "+v.Path.String(), v.Recommendation)
		}
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [a11yscan](https://github.com/a11yscan/a11yscan)*")
}
