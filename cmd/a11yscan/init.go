package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/spf13/cobra"
)

// policyFileName is the default rule policy file name.
const policyFileName = ".a11yscan"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new a11yscan policy file",
		Long: `Initialize creates a new .a11yscan policy file in the current directory.

The generated file lists every rule with its default severity, ready to be
uncommented and tuned:
- Disable rules that don't apply to the project
- Promote warnings the project cares about to errors
- Adjust the large-text threshold to match the design system

Examples:
  # Create .a11yscan in current directory
  a11yscan init

  # Create policy file at a specific path
  a11yscan init -o team-policy.yaml

  # Force overwrite existing file
  a11yscan init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", policyFileName,
		"Output file path for the policy")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing policy file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("policy file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write policy file
	if err := os.WriteFile(outputPath, []byte(policyTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write policy file: %w", err)
	}

	fmt.Printf("Created policy file: %s\n", outputPath)
	fmt.Println("\nEdit this file to tune the rule set:")
	fmt.Println("  - Disable rules that don't apply to the project")
	fmt.Println("  - Override rule severities (info, warning, error)")
	fmt.Println("  - Adjust the large-text font size threshold")

	return nil
}

// policyTemplate renders the default policy file content from the rule
// catalog, so the generated file never drifts from the implemented rules.
func policyTemplate() string {
	var sb strings.Builder

	sb.WriteString("# a11yscan rule policy\n")
	sb.WriteString("#\n")
	sb.WriteString("# Every rule is listed with its default severity. Uncomment an entry to\n")
	sb.WriteString("# disable the rule or override its severity (info, warning, error).\n\n")
	sb.WriteString("rules:\n")

	for _, rule := range model.AllRules() {
		info := model.GetRuleInfo(rule)
		sb.WriteString(fmt.Sprintf("  # %s (default: %s, category: %s)\n",
			rule, strings.ToLower(info.Severity.String()), info.Category))
		sb.WriteString(fmt.Sprintf("  # %s:\n", rule))
		sb.WriteString("  #   disabled: false\n")
		sb.WriteString(fmt.Sprintf("  #   severity: \"%s\"\n\n",
			strings.ToLower(info.Severity.String())))
	}

	sb.WriteString("# Font size in pixels at which regular-weight text counts as large\n")
	sb.WriteString("# for the reduced contrast threshold.\n")
	sb.WriteString("#largeTextFontPx: 24\n\n")
	sb.WriteString("# Treat warning-severity violations as errors for the exit code.\n")
	sb.WriteString("#treatWarningsAsErrors: false\n")

	return sb.String()
}
