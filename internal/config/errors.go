package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoTarget is returned when no target document is specified.
	ErrNoTarget = errors.New("no target specified: provide at least one document path")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would discard every run immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent checks, effectively
	// stopping the run.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidLargeTextSize is returned when the large-text font size is
	// not positive. The threshold must be a real pixel size.
	ErrInvalidLargeTextSize = errors.New("invalid large text size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxFileSize is returned when the max file size is negative.
	// A negative size is invalid; use 0 to use the default limit.
	ErrInvalidMaxFileSize = errors.New("invalid max file size: must be non-negative")

	// ErrUnknownSeverity is returned when a policy file overrides a rule
	// with a severity name that is not info, warning, or error.
	ErrUnknownSeverity = errors.New("unknown severity in policy: must be info, warning, or error")
)
