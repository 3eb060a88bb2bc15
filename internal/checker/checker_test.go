package checker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// defectiveDoc builds a small page exercising several rule families at once:
// a positive tabindex, a dangling reference, a nameless button, and a
// missing h1.
func defectiveDoc(t *testing.T) *dom.Document {
	t.Helper()
	return buildDoc(t, &dom.BuildNode{
		Tag: "body",
		Children: []*dom.BuildNode{
			{Tag: "div", Attrs: []dom.Attr{{Name: "tabindex", Value: "3"}}},
			{Tag: "button", Attrs: []dom.Attr{{Name: "aria-describedby", Value: "missing"}}},
			{Tag: "h2", Text: "Section"},
		},
	})
}

// TestRunnerNilDocument tests the one fatal input condition.
func TestRunnerNilDocument(t *testing.T) {
	t.Parallel()

	_, err := NewRunner().Run(context.Background(), "test.html", nil)
	if !errors.Is(err, ErrNilDocument) {
		t.Errorf("expected ErrNilDocument, got %v", err)
	}
}

// TestRunnerRun tests aggregation across checks into a finalized report.
func TestRunnerRun(t *testing.T) {
	t.Parallel()

	report, err := NewRunner().Run(context.Background(), "test.html", defectiveDoc(t))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Target != "test.html" {
		t.Errorf("target = %q, expected test.html", report.Target)
	}
	if len(report.PerformedChecks) != 7 {
		t.Errorf("performed checks = %d, expected 7", len(report.PerformedChecks))
	}

	expected := map[model.RuleID]int{
		model.RulePositiveTabindex:      1,
		model.RuleDanglingReference:     1,
		model.RuleMissingAccessibleName: 1,
		model.RuleHeadingMissingH1:      1,
		model.RuleHeadingLevelSkipped:   1,
	}
	for rule, n := range expected {
		if got := countRule(report.Violations, rule); got != n {
			t.Errorf("rule %s: got %d violations, expected %d", rule, got, n)
		}
	}
	if report.TotalViolations() != 5 {
		t.Errorf("total = %d, expected 5", report.TotalViolations())
	}

	// Errors sort before warnings, and counts match the list.
	if report.ErrorCount != 4 || report.WarningCount != 1 {
		t.Errorf("counts = %d errors, %d warnings, expected 4 and 1",
			report.ErrorCount, report.WarningCount)
	}
	if last := report.Violations[len(report.Violations)-1]; last.Rule != model.RulePositiveTabindex {
		t.Errorf("last violation = %s, expected the warning to sort last", last.Rule)
	}
}

// TestRunnerDisabledRules tests rule suppression by policy.
func TestRunnerDisabledRules(t *testing.T) {
	t.Parallel()

	runner := NewRunner(WithDisabledRules(map[model.RuleID]bool{
		model.RulePositiveTabindex: true,
	}))

	report, err := runner.Run(context.Background(), "test.html", defectiveDoc(t))
	if err != nil {
		t.Fatal(err)
	}
	if got := countRule(report.Violations, model.RulePositiveTabindex); got != 0 {
		t.Errorf("got %d positive tabindex violations despite the rule being disabled", got)
	}
	if got := countRule(report.Violations, model.RuleDanglingReference); got != 1 {
		t.Errorf("disabling one rule must not suppress others, got %d dangling references", got)
	}
}

// TestRunnerSeverityOverrides tests policy severity replacement.
func TestRunnerSeverityOverrides(t *testing.T) {
	t.Parallel()

	runner := NewRunner(WithSeverityOverrides(map[model.RuleID]model.Severity{
		model.RulePositiveTabindex: model.SeverityError,
	}))

	report, err := runner.Run(context.Background(), "test.html", defectiveDoc(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range report.Violations {
		if v.Rule != model.RulePositiveTabindex {
			continue
		}
		if v.Severity != model.SeverityError || v.SeverityText != "ERROR" {
			t.Errorf("override not applied: severity = %v, text = %q", v.Severity, v.SeverityText)
		}
		return
	}
	t.Fatal("positive tabindex violation not found")
}

// TestRunnerIdempotence tests that two runs over the same immutable tree
// yield byte-identical violation lists.
func TestRunnerIdempotence(t *testing.T) {
	t.Parallel()

	doc := defectiveDoc(t)
	runner := NewRunner()

	first, err := runner.Run(context.Background(), "test.html", doc)
	if err != nil {
		t.Fatal(err)
	}
	second, err := runner.Run(context.Background(), "test.html", doc)
	if err != nil {
		t.Fatal(err)
	}

	a, err := json.Marshal(first.Violations)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second.Violations)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("runs differ:\nfirst:  %s\nsecond: %s", a, b)
	}
}

// TestRunnerCancelledContext tests that cancellation discards the run.
func TestRunnerCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, "test.html", defectiveDoc(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// staticCheck is a test double returning fixed violations.
type staticCheck struct {
	violations []model.Violation
	err        error
}

func (s *staticCheck) Name() string     { return "static" }
func (s *staticCheck) Category() string { return model.CategoryARIA }
func (s *staticCheck) Check(ctx context.Context, doc *dom.Document) ([]model.Violation, error) {
	return s.violations, s.err
}

// TestRunnerCheckFailureIsNotFatal tests that a failing check forfeits its
// findings without aborting the run.
func TestRunnerCheckFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	runner := NewRunner()
	runner.Register(&staticCheck{err: errors.New("boom")})

	report, err := runner.Run(context.Background(), "test.html", defectiveDoc(t))
	if err != nil {
		t.Fatalf("expected the run to survive a check failure, got %v", err)
	}
	if !report.HasViolations() {
		t.Error("expected findings from the surviving checks")
	}
}

// TestRunnerDeduplicatesAcrossChecks tests that two checks reporting the
// same rule at the same path collapse to one violation.
func TestRunnerDeduplicatesAcrossChecks(t *testing.T) {
	t.Parallel()

	duplicate := model.NewViolation(model.RuleRoleUnknown, model.Path{0}, "div", "duplicate")
	runner := NewRunner()
	runner.Register(&staticCheck{violations: []model.Violation{duplicate, duplicate}})

	doc := buildDoc(t, &dom.BuildNode{Tag: "body", Children: []*dom.BuildNode{{Tag: "div"}}})
	report, err := runner.Run(context.Background(), "test.html", doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := countRule(report.Violations, model.RuleRoleUnknown); got != 1 {
		t.Errorf("got %d role violations, expected duplicates to collapse to 1", got)
	}
}
