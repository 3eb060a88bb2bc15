package model

import (
	"encoding/json"
	"testing"
)

// TestPathString tests path rendering.
func TestPathString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		path     Path
		expected string
	}{
		{"root", Path{}, "/"},
		{"nil is root", nil, "/"},
		{"single", Path{0}, "/0"},
		{"nested", Path{0, 2, 1}, "/0/2/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.path.String(); got != tc.expected {
				t.Errorf("Path%v.String() = %q, expected %q", tc.path, got, tc.expected)
			}
		})
	}
}

// TestPathCompare tests lexicographic path ordering.
func TestPathCompare(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		a, b     Path
		expected int
	}{
		{"equal", Path{1, 2}, Path{1, 2}, 0},
		{"less by index", Path{0, 1}, Path{0, 2}, -1},
		{"greater by index", Path{3}, Path{2}, 1},
		{"prefix sorts first", Path{1}, Path{1, 0}, -1},
		{"extension sorts last", Path{1, 0}, Path{1}, 1},
		{"root before everything", Path{}, Path{0}, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.a.Compare(tc.b); got != tc.expected {
				t.Errorf("Compare(%v, %v) = %d, expected %d", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

// TestReportDeduplication tests that exact duplicates collapse and the more
// severe instance wins.
func TestReportDeduplication(t *testing.T) {
	t.Parallel()

	r := NewReport("test.html")

	v := NewViolation(RuleDanglingReference, Path{0, 1}, "div", "dangling ARIA reference \"hint1\"")
	r.AddViolation(v)
	r.AddViolation(v)

	if len(r.Violations) != 1 {
		t.Fatalf("expected 1 violation after duplicate add, got %d", len(r.Violations))
	}

	// Same rule at a different path is not a duplicate.
	r.AddViolation(NewViolation(RuleDanglingReference, Path{0, 2}, "div", "dangling ARIA reference \"hint2\""))
	if len(r.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(r.Violations))
	}

	// A more severe instance at the same location replaces the original.
	weak := NewViolation(RuleRoleRedundant, Path{1}, "nav", "redundant role")
	r.AddViolation(weak)
	strong := weak
	strong.Severity = SeverityError
	r.AddViolation(strong)

	for _, got := range r.Violations {
		if got.Rule == RuleRoleRedundant && got.Severity != SeverityError {
			t.Errorf("expected more severe duplicate to win, got %v", got.Severity)
		}
	}
}

// TestReportFinalizeOrdering tests the deterministic sort order:
// severity descending, then rule ID, then path.
func TestReportFinalizeOrdering(t *testing.T) {
	t.Parallel()

	r := NewReport("test.html")
	r.AddViolation(NewViolation(RuleRoleRedundant, Path{0}, "nav", "redundant role"))
	r.AddViolation(NewViolation(RulePositiveTabindex, Path{2}, "div", "positive tabindex"))
	r.AddViolation(NewViolation(RuleDanglingReference, Path{1, 1}, "span", "dangling reference"))
	r.AddViolation(NewViolation(RuleDanglingReference, Path{1, 0}, "span", "dangling reference"))
	r.AddViolation(NewViolation(RuleContrastInsufficient, Path{3}, "p", "low contrast"))
	r.Finalize()

	want := []struct {
		rule RuleID
		path string
	}{
		{RuleDanglingReference, "/1/0"},
		{RuleDanglingReference, "/1/1"},
		{RuleContrastInsufficient, "/3"},
		{RulePositiveTabindex, "/2"},
		{RuleRoleRedundant, "/0"},
	}
	// Errors sort by rule ID: aria_reference_dangling < contrast_insufficient.

	if len(r.Violations) != len(want) {
		t.Fatalf("expected %d violations, got %d", len(want), len(r.Violations))
	}
	for i, w := range want {
		got := r.Violations[i]
		if got.Rule != w.rule || got.Path.String() != w.path {
			t.Errorf("position %d: got (%s, %s), expected (%s, %s)",
				i, got.Rule, got.Path, w.rule, w.path)
		}
	}

	if r.ErrorCount != 3 || r.WarningCount != 1 || r.InfoCount != 1 {
		t.Errorf("counts = (%d, %d, %d), expected (3, 1, 1)",
			r.ErrorCount, r.WarningCount, r.InfoCount)
	}
}

// TestReportFinalizeIdempotent tests that finalizing twice yields an
// identical serialized report.
func TestReportFinalizeIdempotent(t *testing.T) {
	t.Parallel()

	r := NewReport("test.html")
	r.AddViolation(NewViolation(RulePositiveTabindex, Path{0, 3}, "div", "positive tabindex"))
	r.AddViolation(NewViolation(RuleHeadingLevelSkipped, Path{0, 5}, "h4", "skipped heading level"))
	r.Finalize()

	first, err := json.Marshal(r.Violations)
	if err != nil {
		t.Fatal(err)
	}

	r.Finalize()
	second, err := json.Marshal(r.Violations)
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Errorf("finalize is not idempotent:\nfirst:  %s\nsecond: %s", first, second)
	}
}

// TestSummarize tests the warnings-as-errors policy.
func TestSummarize(t *testing.T) {
	t.Parallel()

	r := NewReport("test.html")
	r.AddViolation(NewViolation(RuleContrastInsufficient, Path{0}, "p", "low contrast"))
	r.AddViolation(NewViolation(RulePositiveTabindex, Path{1}, "div", "positive tabindex"))
	r.AddViolation(NewViolation(RuleRoleRedundant, Path{2}, "nav", "redundant role"))
	r.Finalize()

	normal := r.Summarize(false)
	if normal.ErrorCount != 1 || normal.WarningCount != 1 {
		t.Errorf("Summarize(false) = %+v, expected 1 error, 1 warning", normal)
	}

	strict := r.Summarize(true)
	if strict.ErrorCount != 2 || strict.WarningCount != 0 {
		t.Errorf("Summarize(true) = %+v, expected 2 errors, 0 warnings", strict)
	}
}
