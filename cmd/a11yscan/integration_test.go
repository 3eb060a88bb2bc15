package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestPage writes an HTML document to a temp directory and returns its path.
func writeTestPage(t *testing.T, markup string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(markup), 0600); err != nil {
		t.Fatalf("failed to write test page: %v", err)
	}
	return path
}

// TestCheckCommandIntegration runs the check command through the root command
// the way a user would invoke it.
func TestCheckCommandIntegration(t *testing.T) {
	t.Run("failing document exits with conformance error", func(t *testing.T) {
		docPath := writeTestPage(t,
			`<html><head><title>t</title></head><body><h2>Section</h2></body></html>`)
		reportPath := filepath.Join(t.TempDir(), "report.txt")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"check", "--no-history", "-o", reportPath, docPath})

		err := cmd.Execute()
		if !errors.Is(err, errConformance) {
			t.Fatalf("expected errConformance, got %v", err)
		}

		data, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		output := string(data)
		if !strings.Contains(output, "ACCESSIBILITY CONFORMANCE REPORT") {
			t.Error("expected report header in output file")
		}
		if !strings.Contains(output, "heading_missing_h1") {
			t.Errorf("expected heading_missing_h1 violation in report, got %q", output)
		}
	})

	t.Run("conformant document exits clean", func(t *testing.T) {
		docPath := writeTestPage(t,
			`<html><head><title>t</title></head><body><h1>Title</h1><p>Hello</p></body></html>`)
		reportPath := filepath.Join(t.TempDir(), "report.txt")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"check", "--no-history", "-o", reportPath, docPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("json report is valid JSON", func(t *testing.T) {
		docPath := writeTestPage(t,
			`<html><head><title>t</title></head><body><h2>Section</h2></body></html>`)
		reportPath := filepath.Join(t.TempDir(), "report.json")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"check", "--no-history", "-j", "-o", reportPath, docPath})

		err := cmd.Execute()
		if !errors.Is(err, errConformance) {
			t.Fatalf("expected errConformance, got %v", err)
		}

		data, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}

		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if _, ok := payload["report"]; !ok {
			t.Error("expected report key in JSON output")
		}
	})

	t.Run("warnings promoted to errors fail the check", func(t *testing.T) {
		// A positive tabindex is a warning by default; without -W the run
		// passes, with -W it fails.
		markup := `<html><head><title>t</title></head><body>` +
			`<h1>Title</h1><button tabindex="3">Go</button></body></html>`

		docPath := writeTestPage(t, markup)
		reportPath := filepath.Join(t.TempDir(), "report.txt")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"check", "--no-history", "-o", reportPath, docPath})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected warning-only run to pass, got %v", err)
		}

		cmd = NewRootCmd()
		cmd.SetArgs([]string{"check", "--no-history", "-W", "-o", reportPath, docPath})
		err := cmd.Execute()
		if !errors.Is(err, errConformance) {
			t.Fatalf("expected errConformance with -W, got %v", err)
		}
	})

	t.Run("policy file disables a rule", func(t *testing.T) {
		docPath := writeTestPage(t,
			`<html><head><title>t</title></head><body><h2>Section</h2></body></html>`)

		policyPath := filepath.Join(t.TempDir(), "policy.yaml")
		policy := "rules:\n  heading_missing_h1:\n    disabled: true\n"
		if err := os.WriteFile(policyPath, []byte(policy), 0600); err != nil {
			t.Fatalf("failed to write policy: %v", err)
		}

		reportPath := filepath.Join(t.TempDir(), "report.txt")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"check", "--no-history", "-p", policyPath, "-o", reportPath, docPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected disabled rule to pass the check, got %v", err)
		}
	})

	t.Run("no documents given errors", func(t *testing.T) {
		cmd := NewRootCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"check", "--no-history"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error with no documents")
		}
		if !strings.Contains(err.Error(), "no documents") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
