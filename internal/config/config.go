package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds one whole check run. Analysis is pure in-memory
	// work, so 30 seconds is generous even for very large documents; the
	// timeout exists to put a ceiling on runaway batch jobs.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize of 10 concurrent checks balances throughput with
	// resource usage when processing many documents.
	DefaultBatchSize = 10

	// DefaultLargeTextFontPx is the font size at which regular-weight text
	// qualifies for the reduced contrast threshold (18pt at 96dpi).
	DefaultLargeTextFontPx = 24.0

	// DefaultMaxFileSize limits the document size read from disk.
	// 10MB is far beyond any reasonable page while preventing memory
	// exhaustion from unexpectedly large inputs.
	DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

	// AppName is the application name used for XDG directory paths.
	AppName = "a11yscan"
)

// Config holds all configuration options for a11yscan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CheckConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// LargeTextFontPx is the font size at which regular-weight text counts
	// as large for the reduced contrast threshold.
	LargeTextFontPx float64

	// TreatWarningsAsErrors promotes warnings to errors in the summary,
	// which drives the process exit code. Informational notices are never
	// promoted.
	TreatWarningsAsErrors bool

	// Timeout bounds one whole check run. A run that exceeds it is
	// discarded; there is no partial result.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent checks when processing
	// multiple targets.
	BatchSize int

	// PolicyFilePath is the path to the rule policy file.
	// If empty, the tool searches for .a11yscan in the current directory
	// and then in the user's home directory.
	PolicyFilePath string

	// Policy holds the rule policy loaded from the policy file.
	// This is populated by LoadPolicyFile and applied by the check runner.
	Policy *Policy

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Targets is the list of document paths to check.
	// Must contain at least one path.
	Targets []string

	// DBDir is the directory path for storing the SQLite history database.
	// When set, check results are saved for historical comparison.
	// Defaults to the XDG data directory (~/.local/share/a11yscan on Linux).
	DBDir string

	// SaveToDB indicates whether to save check results to the database.
	// This is automatically set to true when DBDir is configured.
	SaveToDB bool

	// MaxFileSize is the maximum document size in bytes to read.
	// Set to 0 to use the default (10MB).
	MaxFileSize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, font size).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		LargeTextFontPx: DefaultLargeTextFontPx,
		Timeout:         DefaultTimeout,
		BatchSize:       DefaultBatchSize,
		MaxFileSize:     DefaultMaxFileSize,
	}
}

// XDGDataDir returns the XDG data directory for a11yscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/a11yscan
// On macOS: ~/Library/Application Support/a11yscan
// On Windows: %LOCALAPPDATA%\a11yscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for a11yscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/a11yscan
// On macOS: ~/Library/Application Support/a11yscan
// On Windows: %APPDATA%\a11yscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any checking begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one target to check
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// BatchSize must be positive; zero would mean no checking
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// The large-text threshold must be positive to be meaningful
	if c.LargeTextFontPx <= 0 {
		return ErrInvalidLargeTextSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// MaxFileSize must be non-negative; 0 means use the default
	if c.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}

	if c.Policy != nil {
		if err := c.Policy.Validate(); err != nil {
			return err
		}
	}

	return nil
}
