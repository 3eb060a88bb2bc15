package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/database"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/spf13/cobra"
)

// Constants for conformance direction and summary messages.
const (
	directionWorsened   = "worsened"
	directionImproved   = "improved"
	directionUnchanged  = "unchanged"
	noViolationsMessage = "No violations"
)

// NewCompareCmd creates the compare command.
// This command compares check results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [document]",
		Short: "Compare check results with historical data",
		Long: `Compare displays differences between the current and previous check results.

This command retrieves historical check data from the database and shows:
- New violations that appeared since the last check
- Resolved violations that are no longer present
- Changes in severity counts

The comparison requires at least two checks in the database for the specified
document. Use 'a11yscan check' to perform checks and save results.

Examples:
  # Compare latest two checks for a document
  a11yscan compare index.html

  # List all check history for a document
  a11yscan compare --list index.html

  # Compare with a specific historical check by ID
  a11yscan compare --with-run-id 5 index.html

  # Compare checks since a specific date
  a11yscan compare --since "2026-01-01" index.html

  # Output comparison in JSON format
  a11yscan compare --json index.html

  # List all checked documents in the database
  a11yscan compare --list-targets`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List check history for the specified document")
	cmd.Flags().BoolP("list-targets", "L", false,
		"List all checked documents in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific check by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first check after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-targets flag first (requires database but no document)
	listTargets, err := cmd.Flags().GetBool("list-targets")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-targets)
	// This prevents database lock issues when validation fails
	var target string
	if !listTargets {
		// Require a document path for other operations
		if len(args) == 0 {
			return errors.New("document path is required (use --list-targets to see available documents)")
		}
		target = args[0]
	}

	// Use XDG data directory for database
	dbDir := config.XDGDataDir()

	// Open database
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Handle --list-targets flag
	if listTargets {
		return listCheckedTargets(ctx, db)
	}

	// Handle --list flag
	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listCheckHistory(ctx, db, target)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	// Get comparison target flags
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	// Perform comparison
	return runComparison(ctx, db, target, withRunID, sinceDate, jsonOutput, markdownOutput)
}

// listCheckedTargets lists all documents that have check records in the database.
func listCheckedTargets(ctx context.Context, db *database.HistoryDB) error {
	targets, err := db.ListTargets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}

	if len(targets) == 0 {
		fmt.Println("No checked documents found in the database.")
		fmt.Println("\nUse 'a11yscan check <document>' to check a document.")
		return nil
	}

	fmt.Printf("Checked documents (%d):\n\n", len(targets))
	for _, t := range targets {
		fmt.Printf("  • %s\n", t)
	}
	fmt.Println("\nUse 'a11yscan compare --list <document>' to see check history for a document.")

	return nil
}

// listCheckHistory lists all check records for a specific document.
func listCheckHistory(ctx context.Context, db *database.HistoryDB, target string) error {
	runs, err := db.GetHistoryWithMetadata(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to get check history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No check history found for %s\n", target)
		fmt.Println("\nUse 'a11yscan check' to check this document.")
		return nil
	}

	fmt.Printf("Check history for %s (%d checks):\n\n", target, len(runs))
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Date", "Violations")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range runs {
		fmt.Printf("  %-6d  %-20s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			formatViolationSummary(meta),
		)
	}

	fmt.Println("\nUse 'a11yscan compare <document>' to compare the latest two checks.")
	fmt.Println("Use 'a11yscan compare --with-run-id <id> <document>' to compare with a specific check.")

	return nil
}

// formatViolationSummary formats per-severity counts into a human-readable string.
func formatViolationSummary(meta database.RunMetadata) string {
	var parts []string
	if meta.ErrorCount > 0 {
		parts = append(parts, fmt.Sprintf("E:%d", meta.ErrorCount))
	}
	if meta.WarningCount > 0 {
		parts = append(parts, fmt.Sprintf("W:%d", meta.WarningCount))
	}
	if meta.InfoCount > 0 {
		parts = append(parts, fmt.Sprintf("I:%d", meta.InfoCount))
	}

	if len(parts) == 0 {
		return noViolationsMessage
	}
	return strings.Join(parts, " ")
}

// runComparison performs the actual comparison between check reports.
func runComparison(ctx context.Context, db *database.HistoryDB, target string, withRunID int64, sinceDate string, jsonOutput, markdownOutput bool) error {
	// Get the check history
	reports, err := db.GetHistory(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to get check history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no check history found for %s", target)
	}

	if len(reports) < 2 && withRunID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 checks are required for comparison (found %d)", len(reports))
	}

	// Determine which reports to compare
	var currentReport, previousReport *model.Report

	// Latest report is always the current one
	currentReport = reports[0]

	if withRunID > 0 {
		// Find the report with the specified ID
		previousReport, err = db.GetReportByID(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to get check with ID %d: %w", withRunID, err)
		}
		if previousReport == nil {
			return fmt.Errorf("check with ID %d not found", withRunID)
		}
		// Validate that the run ID belongs to the same document
		if previousReport.Target != target {
			return fmt.Errorf("check ID %d belongs to %s, not %s", withRunID, previousReport.Target, target)
		}
	} else if sinceDate != "" {
		// Parse the date and find the first (oldest) report at or after the specified date
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// Reports are sorted by timestamp DESC (newest first), so iterate in reverse
		// to find the first (oldest) report at or after the date
		for i := len(reports) - 1; i >= 0; i-- {
			r := reports[i]
			if r.DateChecked.After(parsedDate) || r.DateChecked.Equal(parsedDate) {
				previousReport = r
				break // Stop at the first (oldest) matching report
			}
		}
		if previousReport == nil {
			return fmt.Errorf("no checks found since %s", sinceDate)
		}
		// If only one check matches and it's the current report, we can't compare
		if previousReport == currentReport {
			return fmt.Errorf("only one check found since %s; at least 2 checks are required for comparison", sinceDate)
		}
	} else {
		// Default: compare with the previous check
		previousReport = reports[1]
	}

	// Generate comparison result
	comparison := compareReports(previousReport, currentReport)

	// Output the result
	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two check reports.
type ComparisonResult struct {
	// Target is the checked document.
	Target string `json:"target"`

	// ContentChanged indicates whether the document bytes differ between the
	// two checks. When false, violation changes come from policy changes.
	ContentChanged bool `json:"content_changed"`

	// PreviousCheck contains metadata about the previous check.
	PreviousCheck CheckMetadata `json:"previous_check"`

	// CurrentCheck contains metadata about the current check.
	CurrentCheck CheckMetadata `json:"current_check"`

	// NewViolations contains violations that are new in the current check.
	NewViolations []model.Violation `json:"new_violations,omitempty"`

	// ResolvedViolations contains violations that were in the previous check
	// but not in the current one.
	ResolvedViolations []model.Violation `json:"resolved_violations,omitempty"`

	// UnchangedCount is the number of violations that remain unchanged.
	UnchangedCount int `json:"unchanged_count"`

	// Change describes the overall change in conformance.
	Change ConformanceChange `json:"change"`
}

// CheckMetadata contains metadata about a check for comparison display.
type CheckMetadata struct {
	// DateChecked is when the check was performed.
	DateChecked time.Time `json:"date_checked"`

	// TotalViolations is the total number of violations in this check.
	TotalViolations int `json:"total_violations"`

	// ErrorCount is the number of error-severity violations.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning-severity violations.
	WarningCount int `json:"warning_count"`

	// InfoCount is the number of informational notices.
	InfoCount int `json:"info_count"`
}

// ConformanceChange describes the change in conformance between checks.
type ConformanceChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// ErrorDelta is the change in error count.
	ErrorDelta int `json:"error_delta"`

	// WarningDelta is the change in warning count.
	WarningDelta int `json:"warning_delta"`

	// InfoDelta is the change in informational notice count.
	InfoDelta int `json:"info_delta"`
}

// compareReports compares two check reports and generates a comparison result.
func compareReports(previous, current *model.Report) *ComparisonResult {
	result := &ComparisonResult{
		Target: current.Target,
		ContentChanged: previous.ContentHash == "" || current.ContentHash == "" ||
			previous.ContentHash != current.ContentHash,
		PreviousCheck: CheckMetadata{
			DateChecked:     previous.DateChecked,
			TotalViolations: len(previous.Violations),
			ErrorCount:      previous.ErrorCount,
			WarningCount:    previous.WarningCount,
			InfoCount:       previous.InfoCount,
		},
		CurrentCheck: CheckMetadata{
			DateChecked:     current.DateChecked,
			TotalViolations: len(current.Violations),
			ErrorCount:      current.ErrorCount,
			WarningCount:    current.WarningCount,
			InfoCount:       current.InfoCount,
		},
	}

	// Build violation maps for comparison
	previousViolations := make(map[string]model.Violation)
	currentViolations := make(map[string]model.Violation)

	for _, v := range previous.Violations {
		previousViolations[violationKey(v)] = v
	}
	for _, v := range current.Violations {
		currentViolations[violationKey(v)] = v
	}

	// Find new violations (in current but not in previous)
	for key, v := range currentViolations {
		if _, exists := previousViolations[key]; !exists {
			result.NewViolations = append(result.NewViolations, v)
		}
	}

	// Find resolved violations (in previous but not in current)
	for key, v := range previousViolations {
		if _, exists := currentViolations[key]; !exists {
			result.ResolvedViolations = append(result.ResolvedViolations, v)
		} else {
			result.UnchangedCount++
		}
	}

	// Calculate conformance change
	result.Change = calculateChange(result.PreviousCheck, result.CurrentCheck)

	return result
}

// violationKey generates a unique key for a violation for comparison purposes.
// Rule plus node path identifies the same defect across runs even when the
// message wording changes.
func violationKey(v model.Violation) string {
	return string(v.Rule) + "|" + v.Path.String()
}

// calculateChange calculates the change in conformance between two checks.
func calculateChange(previous, current CheckMetadata) ConformanceChange {
	change := ConformanceChange{
		ErrorDelta:   current.ErrorCount - previous.ErrorCount,
		WarningDelta: current.WarningCount - previous.WarningCount,
		InfoDelta:    current.InfoCount - previous.InfoCount,
	}

	// Determine overall direction based on weighted score
	// Error changes have more weight than warnings and notices
	previousScore := previous.ErrorCount*10 + previous.WarningCount*3 + previous.InfoCount
	currentScore := current.ErrorCount*10 + current.WarningCount*3 + current.InfoCount

	if currentScore < previousScore {
		change.Direction = directionImproved
	} else if currentScore > previousScore {
		change.Direction = directionWorsened
	} else {
		change.Direction = directionUnchanged
	}

	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *ComparisonResult) error {
	fmt.Printf("# Check Comparison: %s\n\n", result.Target)

	// Conformance change summary
	fmt.Println("## Summary")
	fmt.Printf("\n**Conformance:** %s\n", formatDirection(result.Change.Direction))
	fmt.Printf("\n**Content:** %s\n\n", formatContentChange(result.ContentChanged))

	// Check metadata table
	fmt.Println("| Metric | Previous | Current | Change |")
	fmt.Println("|--------|----------|---------|--------|")
	fmt.Printf("| Date | %s | %s | - |\n",
		result.PreviousCheck.DateChecked.Format("2006-01-02 15:04"),
		result.CurrentCheck.DateChecked.Format("2006-01-02 15:04"))
	fmt.Printf("| Errors | %d | %d | %s |\n",
		result.PreviousCheck.ErrorCount,
		result.CurrentCheck.ErrorCount,
		formatDelta(result.Change.ErrorDelta))
	fmt.Printf("| Warnings | %d | %d | %s |\n",
		result.PreviousCheck.WarningCount,
		result.CurrentCheck.WarningCount,
		formatDelta(result.Change.WarningDelta))
	fmt.Printf("| Info | %d | %d | %s |\n",
		result.PreviousCheck.InfoCount,
		result.CurrentCheck.InfoCount,
		formatDelta(result.Change.InfoDelta))
	fmt.Printf("| **Total** | **%d** | **%d** | **%s** |\n",
		result.PreviousCheck.TotalViolations,
		result.CurrentCheck.TotalViolations,
		formatDelta(result.CurrentCheck.TotalViolations-result.PreviousCheck.TotalViolations))

	// New violations
	if len(result.NewViolations) > 0 {
		fmt.Printf("\n## New Violations (%d)\n\n", len(result.NewViolations))
		for _, v := range result.NewViolations {
			fmt.Printf("- **[%s]** %s: %s\n", v.SeverityText, v.Rule, v.Message)
			fmt.Printf("  - Location: `<%s> at %s`\n", v.Tag, v.Path)
		}
	}

	// Resolved violations
	if len(result.ResolvedViolations) > 0 {
		fmt.Printf("\n## Resolved Violations (%d)\n\n", len(result.ResolvedViolations))
		for _, v := range result.ResolvedViolations {
			fmt.Printf("- ~~**[%s]** %s: %s~~\n", v.SeverityText, v.Rule, v.Message)
		}
	}

	// Unchanged count
	if result.UnchangedCount > 0 {
		fmt.Printf("\n---\n\n*%d violations unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Check Comparison: %s\n", result.Target)
	fmt.Println(strings.Repeat("=", 60))

	// Conformance change summary
	fmt.Printf("\nConformance: %s\n", formatDirection(result.Change.Direction))
	fmt.Printf("Content:     %s\n", formatContentChange(result.ContentChanged))

	// Check dates
	fmt.Printf("\nPrevious check: %s\n", result.PreviousCheck.DateChecked.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current check:  %s\n", result.CurrentCheck.DateChecked.Format("2006-01-02 15:04:05"))

	// Summary table
	fmt.Println("\nViolations Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Error",
		result.PreviousCheck.ErrorCount, result.CurrentCheck.ErrorCount,
		formatDelta(result.Change.ErrorDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Warning",
		result.PreviousCheck.WarningCount, result.CurrentCheck.WarningCount,
		formatDelta(result.Change.WarningDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Info",
		result.PreviousCheck.InfoCount, result.CurrentCheck.InfoCount,
		formatDelta(result.Change.InfoDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousCheck.TotalViolations, result.CurrentCheck.TotalViolations,
		formatDelta(result.CurrentCheck.TotalViolations-result.PreviousCheck.TotalViolations))

	// New violations
	if len(result.NewViolations) > 0 {
		fmt.Printf("\nNew Violations (%d):\n", len(result.NewViolations))
		for _, v := range result.NewViolations {
			fmt.Printf("  [+] [%s] %s: %s\n", v.SeverityText, v.Rule, v.Message)
			fmt.Printf("      Location: <%s> at %s\n", v.Tag, v.Path)
		}
	}

	// Resolved violations
	if len(result.ResolvedViolations) > 0 {
		fmt.Printf("\nResolved Violations (%d):\n", len(result.ResolvedViolations))
		for _, v := range result.ResolvedViolations {
			fmt.Printf("  [-] [%s] %s: %s\n", v.SeverityText, v.Rule, v.Message)
		}
	}

	// Unchanged count
	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d violations\n", result.UnchangedCount)
	}

	return nil
}

// formatDirection formats the conformance change direction for display.
func formatDirection(direction string) string {
	switch direction {
	case directionImproved:
		return "IMPROVED (fewer or less severe violations)"
	case directionWorsened:
		return "WORSENED (more or more severe violations)"
	default:
		return "UNCHANGED"
	}
}

// formatContentChange describes whether the document bytes changed between checks.
func formatContentChange(changed bool) string {
	if changed {
		return "document content changed"
	}
	return "document content identical (differences come from rule policy)"
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
