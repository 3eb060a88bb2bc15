package checker

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/a11yscan/a11yscan/internal/contrast"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// ErrNilDocument is returned when Run is handed a nil document.
// This is the only fatal condition in the package: every malformed input
// inside a real document degrades to a reported violation or a skipped
// check, never an aborted run.
var ErrNilDocument = errors.New("checker: nil document")

// Check defines the interface for individual conformance checks.
// Each check focuses on one family of rules and is a pure function of the
// document tree.
//
// Design decision: We use an interface rather than concrete types because:
//  1. Allows for easy extension with new checks
//  2. Enables testing with mock checks
//  3. New rules are added by extending the check set, not by modifying
//     existing checks
type Check interface {
	// Name returns the check's name for logging and reporting.
	Name() string

	// Category returns the check's rule category.
	Category() string

	// Check runs the analysis on the document tree.
	Check(ctx context.Context, doc *dom.Document) ([]model.Violation, error)
}

// Options configures runner behavior.
type Options struct {
	// LargeTextFontPx is the font size at which regular-weight text counts
	// as large for the reduced contrast threshold.
	LargeTextFontPx float64

	// DisabledRules suppresses violations of the listed rules entirely.
	DisabledRules map[model.RuleID]bool

	// SeverityOverrides replaces the catalog severity of the listed rules.
	SeverityOverrides map[model.RuleID]model.Severity
}

// DefaultOptions returns sensible default runner options.
func DefaultOptions() Options {
	return Options{
		LargeTextFontPx: contrast.DefaultLargeTextPx,
	}
}

// WithLargeTextFontPx sets the large-text font size threshold.
func WithLargeTextFontPx(px float64) func(*Options) {
	return func(o *Options) {
		if px > 0 {
			o.LargeTextFontPx = px
		}
	}
}

// WithDisabledRules suppresses the listed rules.
func WithDisabledRules(rules map[model.RuleID]bool) func(*Options) {
	return func(o *Options) {
		o.DisabledRules = rules
	}
}

// WithSeverityOverrides replaces catalog severities for the listed rules.
func WithSeverityOverrides(overrides map[model.RuleID]model.Severity) func(*Options) {
	return func(o *Options) {
		o.SeverityOverrides = overrides
	}
}

// Runner coordinates conformance checks across the registered check set and
// aggregates their violations into a single report.
//
// Design decision: We use a coordinator pattern rather than having callers
// run checks independently because:
//  1. Unified deduplication and deterministic ordering across all findings
//  2. Policy overrides apply in one place instead of inside every check
//  3. Consistent context and cancellation handling
type Runner struct {
	// checks is the list of registered checks to run.
	checks []Check

	// options configures runner behavior.
	options Options
}

// NewRunner creates a new Runner with all built-in checks registered.
func NewRunner(opts ...func(*Options)) *Runner {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	r := &Runner{
		options: options,
		checks:  make([]Check, 0),
	}

	r.Register(NewContrastCheck(options.LargeTextFontPx))
	r.Register(NewTabOrderCheck())
	r.Register(NewHeadingCheck())
	r.Register(NewRoleCheck())
	r.Register(NewReferenceCheck())
	r.Register(NewAccessibleNameCheck())
	r.Register(NewStateCheck())

	return r
}

// Register adds a check to the list.
func (r *Runner) Register(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every registered check against the document and returns the
// finalized report for the given target.
//
// Checks run concurrently; each is a pure function of the same immutable
// tree, so the only join point is the aggregation below. A check error
// skips that check's findings rather than aborting the run. Cancellation
// of ctx is the one exception and discards the whole in-flight run.
func (r *Runner) Run(ctx context.Context, target string, doc *dom.Document) (*model.Report, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	results := make([][]model.Violation, len(r.checks))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range r.checks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			violations, err := c.Check(gctx, doc)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				// A failing check forfeits its findings only.
				return nil
			}
			results[i] = violations
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := model.NewReport(target)
	for _, c := range r.checks {
		report.PerformedChecks = append(report.PerformedChecks, c.Name())
	}

	for _, violations := range results {
		for _, v := range violations {
			if r.options.DisabledRules[v.Rule] {
				continue
			}
			if severity, ok := r.options.SeverityOverrides[v.Rule]; ok {
				v.Severity = severity
				v.SeverityText = severity.String()
			}
			report.AddViolation(v)
		}
	}

	report.Finalize()
	return report, nil
}
