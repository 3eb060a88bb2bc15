package pipeline

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/a11yscan/a11yscan/internal/checker"
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"golang.org/x/crypto/sha3"
)

// LoadStep reads the target document from disk.
// It enforces a size limit and records a content hash so that history
// queries can distinguish content changes from policy changes.
//
// Design decision: Loading is a separate step because:
// 1. It's the only step that touches the filesystem
// 2. The raw bytes are useful to later steps (hashing, diagnostics)
// 3. Alternate sources (stdin, archives) can swap in their own loader
type LoadStep struct {
	// maxFileSize limits the document size read from disk.
	maxFileSize int64

	// logger for structured logging.
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadMaxFileSize sets the maximum document size in bytes.
// Documents larger than this are rejected rather than truncated, because
// checking a truncated tree would produce misleading results.
func WithLoadMaxFileSize(size int64) LoadStepOption {
	return func(s *LoadStep) {
		if size > 0 {
			s.maxFileSize = size
		}
	}
}

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a new document loading step.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		maxFileSize: config.DefaultMaxFileSize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, run *Run) error {
	f, err := os.Open(run.Target) //nolint:gosec // User-provided document path is intentional
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat document: %w", err)
	}
	if info.Size() > s.maxFileSize {
		return fmt.Errorf("document %s is %d bytes, exceeds limit of %d bytes",
			run.Target, info.Size(), s.maxFileSize)
	}

	content, err := io.ReadAll(io.LimitReader(f, s.maxFileSize))
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	digest := sha3.Sum256(content)

	run.Content = content
	run.ContentHash = hex.EncodeToString(digest[:])

	s.logger.Debug("document loaded",
		"target", run.Target,
		"bytes", len(content),
		"hash", run.ContentHash,
	)

	return nil
}

// ParseStep turns the loaded bytes into a document tree.
//
// Design decision: Parsing is separate from loading so that callers who
// already hold the markup in memory (tests, editors, future servers) can
// run the pipeline from this step onward.
type ParseStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// ParseStepOption configures a ParseStep.
type ParseStepOption func(*ParseStep)

// WithParseLogger sets a custom logger for the parse step.
func WithParseLogger(logger *slog.Logger) ParseStepOption {
	return func(s *ParseStep) {
		s.logger = logger
	}
}

// NewParseStep creates a new document parsing step.
func NewParseStep(opts ...ParseStepOption) *ParseStep {
	s := &ParseStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do executes the parse step.
func (s *ParseStep) Do(_ context.Context, run *Run) error {
	if run.Content == nil {
		return fmt.Errorf("parse %s: no content loaded", run.Target)
	}

	doc, err := dom.Parse(bytes.NewReader(run.Content))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	run.Doc = doc

	s.logger.Debug("document parsed",
		"target", run.Target,
		"nodes", doc.Len(),
	)

	return nil
}

// CheckStep runs the conformance checks against the parsed tree and
// produces the finalized report.
type CheckStep struct {
	// runner coordinates the individual checks.
	runner *checker.Runner

	// logger for structured logging.
	logger *slog.Logger
}

// CheckStepOption configures a CheckStep.
type CheckStepOption func(*CheckStep)

// WithCheckLogger sets a custom logger for the check step.
func WithCheckLogger(logger *slog.Logger) CheckStepOption {
	return func(s *CheckStep) {
		s.logger = logger
	}
}

// NewCheckStep creates a new conformance checking step.
// The runner must be pre-configured with the desired rule policy.
func NewCheckStep(runner *checker.Runner, opts ...CheckStepOption) *CheckStep {
	s := &CheckStep{
		runner: runner,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CheckStep) Name() string {
	return "check"
}

// Do executes the check step.
func (s *CheckStep) Do(ctx context.Context, run *Run) error {
	report, err := s.runner.Run(ctx, run.Target, run.Doc)
	if err != nil {
		return fmt.Errorf("run checks: %w", err)
	}

	report.ContentHash = run.ContentHash
	run.Report = report

	s.logger.Debug("checks completed",
		"target", run.Target,
		"violations", len(report.Violations),
	)

	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// MaxFileSize is the maximum document size in bytes to read.
	MaxFileSize int64

	// LargeTextFontPx is the font size threshold for large text.
	LargeTextFontPx float64
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineMaxFileSize sets the maximum document size in bytes.
func WithPipelineMaxFileSize(size int64) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MaxFileSize = size
	}
}

// WithPipelineLargeTextFontPx sets the large-text font size threshold.
func WithPipelineLargeTextFontPx(px float64) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.LargeTextFontPx = px
	}
}

// DefaultPipeline creates a pipeline with the standard load, parse, and
// check steps configured.
//
// Design decision: We provide a default pipeline because:
// 1. Most users want the full load-parse-check sequence
// 2. Reduces boilerplate in CLI
// 3. Ensures consistent ordering
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineMaxFileSize, etc).
func DefaultPipeline(runner *checker.Runner, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		MaxFileSize:     config.DefaultMaxFileSize,
		LargeTextFontPx: config.DefaultLargeTextFontPx,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewLoadStep(WithLoadMaxFileSize(cfg.MaxFileSize)),
		NewParseStep(),
		NewCheckStep(runner),
	)

	return p
}
