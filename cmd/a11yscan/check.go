package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/a11yscan/a11yscan/internal/checker"
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/database"
	"github.com/a11yscan/a11yscan/internal/log"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/pipeline"
	"github.com/a11yscan/a11yscan/internal/report"
	"github.com/spf13/cobra"
)

// errConformance signals that at least one document has conformance errors.
// It drives the non-zero exit code while keeping the message short; the
// violations themselves were already written to the report output.
var errConformance = errors.New("conformance errors found")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [documents...]",
		Short: "Check HTML documents for accessibility conformance issues",
		Long: `Check analyzes HTML documents for accessibility conformance issues.

It parses each document and runs a fixed set of checks covering:
- Color contrast against WCAG minimum ratios
- Keyboard traversal and focusability of interactive elements
- Heading hierarchy (missing h1, duplicate h1, skipped levels)
- ARIA roles, states, references, and accessible names

The process exits non-zero when any document has error-severity
violations. Warnings can be promoted to errors with --warnings-as-errors.

Examples:
  # Check a single document
  a11yscan check index.html

  # Check multiple documents concurrently
  a11yscan check pages/*.html

  # Output JSON report
  a11yscan check --json index.html

  # Fail the build on warnings too
  a11yscan check --warnings-as-errors index.html

  # Use a custom rule policy file
  a11yscan check -p team-policy.yaml index.html

Policy file (.a11yscan) example:
  rules:
    role_redundant:
      disabled: true
    positive_tabindex:
      severity: "error"
  largeTextFontPx: 24
  treatWarningsAsErrors: false`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	// Check behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for checking each document")
	cmd.Flags().Float64("large-text", config.DefaultLargeTextFontPx,
		"Font size in pixels at which regular-weight text counts as large")
	cmd.Flags().BoolP("warnings-as-errors", "W", false,
		"Treat warning-severity violations as errors for the exit code")

	// Batch checking flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent document checks")

	// Policy file
	cmd.Flags().StringP("policy", "p", "",
		"Rule policy file path (default: .a11yscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not save check results to the history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCheck(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.LargeTextFontPx, err = cmd.Flags().GetFloat64("large-text")
	if err != nil {
		return nil, err
	}

	cfg.TreatWarningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.PolicyFilePath, err = cmd.Flags().GetString("policy")
	if err != nil {
		return nil, err
	}

	// Load the rule policy from the policy file.
	// If user explicitly specified a policy file path, error if not found.
	// If no path specified, silently use an empty policy if no file found.
	explicitPolicyPath := cfg.PolicyFilePath != ""
	policyPath := config.FindPolicyFile(cfg.PolicyFilePath)

	if policyPath != "" {
		cfg.Policy, err = config.LoadPolicyFile(policyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load policy file %s: %w", policyPath, err)
		}
	} else if explicitPolicyPath {
		// User explicitly specified a policy file that doesn't exist
		return nil, fmt.Errorf("policy file not found: %s", cfg.PolicyFilePath)
	} else {
		// Use empty policy if no file found and user didn't explicitly specify one
		cfg.Policy = &config.Policy{
			Rules: make(map[string]config.RulePolicy),
		}
	}

	// Policy file settings apply unless the equivalent flag was given explicitly
	if cfg.Policy.LargeTextFontPx > 0 && !cmd.Flags().Changed("large-text") {
		cfg.LargeTextFontPx = cfg.Policy.LargeTextFontPx
	}
	if cfg.Policy.TreatWarningsAsErrors {
		cfg.TreatWarningsAsErrors = true
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}

	// Save to database using XDG data directory unless opted out
	cfg.SaveToDB = !noHistory
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Get positional arguments (document paths)
	cfg.Targets = args

	return cfg, nil
}

// newRunner creates a check runner configured from the config and policy.
func newRunner(cfg *config.Config) *checker.Runner {
	opts := []func(*checker.Options){
		checker.WithLargeTextFontPx(cfg.LargeTextFontPx),
	}
	if cfg.Policy != nil {
		opts = append(opts,
			checker.WithDisabledRules(cfg.Policy.DisabledRules()),
			checker.WithSeverityOverrides(cfg.Policy.SeverityOverrides()),
		)
	}
	return checker.NewRunner(opts...)
}

// runCheck executes the check across all targets.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Targets) == 0 {
		return errors.New("no documents provided (specify one or more document paths as arguments)")
	}

	logger.Info("starting check",
		"targets", cfg.Targets,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Use batch processor for parallel checking if multiple targets
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchCheck(ctx, cfg, db, logger)
	}

	// Single target or sequential checking
	return runSequentialCheck(ctx, cfg, db, logger)
}

// createPipeline creates a pipeline with the given configuration.
func createPipeline(logger *slog.Logger, cfg *config.Config) *pipeline.Pipeline {
	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}

	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineLargeTextFontPx(cfg.LargeTextFontPx),
	}
	if cfg.MaxFileSize > 0 {
		configOpts = append(configOpts, pipeline.WithPipelineMaxFileSize(cfg.MaxFileSize))
	}

	return pipeline.DefaultPipeline(newRunner(cfg), pipelineOpts, configOpts...)
}

// runSequentialCheck checks targets one at a time.
func runSequentialCheck(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	failed := false

	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := createPipeline(logger, cfg)
		run := pipeline.NewRun(target)

		fmt.Printf("Checking %s...\n", target)
		startTime := time.Now()

		// Bound each document check by the configured timeout
		runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		err := p.Execute(runCtx, run)
		cancel()

		if err != nil {
			logger.Error("check failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Check error for %s: %v\n", target, err)
			failed = true
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Check completed in %s\n\n", elapsed.Round(time.Millisecond))

		// Generate and output report
		if err := outputReport(cfg, run.Report); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		// Save to database if enabled
		if err := saveReport(ctx, db, run.Report, logger); err != nil {
			logger.Error("failed to save report", "target", target, "error", err)
		}

		if run.Report.Summarize(cfg.TreatWarningsAsErrors).ErrorCount > 0 {
			failed = true
		}
	}

	if failed {
		return errConformance
	}
	return nil
}

// runBatchCheck checks multiple targets concurrently using BatchProcessor.
func runBatchCheck(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch check of %d documents (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return createPipeline(logger, cfg)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	failed := false
	err := bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(run *pipeline.Run, index int) {
		mu.Lock()
		defer mu.Unlock()

		if run.Err != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] Check error for %s: %v\n",
				index+1, len(cfg.Targets), run.Target, run.Err)
			failed = true
			return
		}

		fmt.Printf("[%d/%d] Check completed: %s\n", index+1, len(cfg.Targets), run.Target)

		// Generate and output report
		if err := outputReport(cfg, run.Report); err != nil {
			logger.Error("report failed", "target", run.Target, "error", err)
		}

		// Save to database if enabled
		if err := saveReport(ctx, db, run.Report, logger); err != nil {
			logger.Error("failed to save report", "target", run.Target, "error", err)
		}

		if run.Report.Summarize(cfg.TreatWarningsAsErrors).ErrorCount > 0 {
			failed = true
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch check completed in %s\n", elapsed.Round(time.Millisecond))

	if err != nil {
		return err
	}
	if failed {
		return errConformance
	}
	return nil
}

// outputReport outputs the check report in the requested format.
func outputReport(cfg *config.Config, rep *model.Report) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Append so multi-target runs collect all reports in one file
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report with version and summary)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(rep)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(rep)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(rep)
	return err
}

// saveReport saves the check report to the database if enabled.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.HistoryDB, rep *model.Report, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveReport(ctx, rep); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	logger.Info("report saved to database", "target", rep.Target)
	return nil
}
