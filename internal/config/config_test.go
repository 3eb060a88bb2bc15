package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// This test ensures that defaults are documented through tests and that changes
// to defaults are intentional (tests will fail if defaults change unexpectedly).
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	// Verify each default value explicitly
	// This serves as living documentation of the defaults
	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default BatchSize is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 10 {
			t.Errorf("expected BatchSize to be 10, got %d", cfg.BatchSize)
		}
	})

	t.Run("default LargeTextFontPx is 24", func(t *testing.T) {
		t.Parallel()
		if cfg.LargeTextFontPx != 24.0 {
			t.Errorf("expected LargeTextFontPx to be 24.0, got %f", cfg.LargeTextFontPx)
		}
	})

	t.Run("default MaxFileSize is 10MB", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxFileSize != 10*1024*1024 {
			t.Errorf("expected MaxFileSize to be 10MB, got %d", cfg.MaxFileSize)
		}
	})

	t.Run("default TreatWarningsAsErrors is false", func(t *testing.T) {
		t.Parallel()
		if cfg.TreatWarningsAsErrors {
			t.Error("expected TreatWarningsAsErrors to be false")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	// Tests can modify specific fields to test validation rules.
	validConfig := func() *Config {
		return &Config{
			Targets:         []string{"page.html"},
			Timeout:         30 * time.Second,
			BatchSize:       10,
			LargeTextFontPx: 24.0,
		}
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("multiple targets is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Targets = []string{"index.html", "about.html", "contact.html"}

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty targets returns ErrNoTarget", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Targets = []string{}

		err := cfg.Validate()
		if !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("nil targets returns ErrNoTarget", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Targets = nil

		err := cfg.Validate()
		if !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("zero timeout returns ErrInvalidTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Timeout = 0

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("negative timeout returns ErrInvalidTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Timeout = -1 * time.Second

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("zero batch size returns ErrInvalidBatchSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BatchSize = 0

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})

	t.Run("negative batch size returns ErrInvalidBatchSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BatchSize = -1

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})

	t.Run("zero large text size returns ErrInvalidLargeTextSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.LargeTextFontPx = 0

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidLargeTextSize) {
			t.Errorf("expected ErrInvalidLargeTextSize, got %v", err)
		}
	})

	t.Run("negative max file size returns ErrInvalidMaxFileSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxFileSize = -1

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidMaxFileSize) {
			t.Errorf("expected ErrInvalidMaxFileSize, got %v", err)
		}
	})

	t.Run("zero max file size is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxFileSize = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("json and markdown both enabled returns ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true

		err := cfg.Validate()
		if !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("json only is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = false

		err := cfg.Validate()
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("markdown only is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = false
		cfg.MarkdownReport = true

		err := cfg.Validate()
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("invalid policy severity returns ErrUnknownSeverity", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Policy = &Policy{
			Rules: map[string]RulePolicy{
				"contrast_insufficient": {Severity: "critical"},
			},
		}

		err := cfg.Validate()
		if !errors.Is(err, ErrUnknownSeverity) {
			t.Errorf("expected ErrUnknownSeverity, got %v", err)
		}
	})

	t.Run("valid policy passes validation", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Policy = &Policy{
			Rules: map[string]RulePolicy{
				"positive_tabindex": {Severity: "error"},
				"role_redundant":    {Disabled: true},
			},
		}

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestPolicyValidate tests the Policy.Validate method.
func TestPolicyValidate(t *testing.T) {
	t.Parallel()

	t.Run("empty policy is valid", func(t *testing.T) {
		t.Parallel()

		p := &Policy{}
		if err := p.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("accepts all known severity names", func(t *testing.T) {
		t.Parallel()

		p := &Policy{
			Rules: map[string]RulePolicy{
				"rule-a": {Severity: "info"},
				"rule-b": {Severity: "warning"},
				"rule-c": {Severity: "error"},
			},
		}
		if err := p.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("rejects unknown severity name", func(t *testing.T) {
		t.Parallel()

		p := &Policy{
			Rules: map[string]RulePolicy{
				"rule-a": {Severity: "fatal"},
			},
		}
		err := p.Validate()
		if !errors.Is(err, ErrUnknownSeverity) {
			t.Errorf("expected ErrUnknownSeverity, got %v", err)
		}
	})

	t.Run("empty severity is skipped", func(t *testing.T) {
		t.Parallel()

		p := &Policy{
			Rules: map[string]RulePolicy{
				"rule-a": {Disabled: true},
			},
		}
		if err := p.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestPolicyDisabledRules tests the DisabledRules method.
func TestPolicyDisabledRules(t *testing.T) {
	t.Parallel()

	t.Run("collects only disabled rules", func(t *testing.T) {
		t.Parallel()

		p := &Policy{
			Rules: map[string]RulePolicy{
				"role_redundant":        {Disabled: true},
				"positive_tabindex":     {Severity: "error"},
				"heading_level_skipped": {Disabled: true},
			},
		}

		disabled := p.DisabledRules()
		if len(disabled) != 2 {
			t.Fatalf("expected 2 disabled rules, got %d", len(disabled))
		}
		if !disabled["role_redundant"] {
			t.Error("expected role_redundant to be disabled")
		}
		if !disabled["heading_level_skipped"] {
			t.Error("expected heading_level_skipped to be disabled")
		}
	})

	t.Run("empty policy yields empty map", func(t *testing.T) {
		t.Parallel()

		p := &Policy{}
		if len(p.DisabledRules()) != 0 {
			t.Error("expected no disabled rules")
		}
	})
}

// TestPolicySeverityOverrides tests the SeverityOverrides method.
func TestPolicySeverityOverrides(t *testing.T) {
	t.Parallel()

	t.Run("maps severity names to severities", func(t *testing.T) {
		t.Parallel()

		p := &Policy{
			Rules: map[string]RulePolicy{
				"positive_tabindex": {Severity: "error"},
				"role_redundant":    {Disabled: true},
			},
		}

		overrides := p.SeverityOverrides()
		if len(overrides) != 1 {
			t.Fatalf("expected 1 override, got %d", len(overrides))
		}
		severity, ok := overrides["positive_tabindex"]
		if !ok {
			t.Fatal("expected override for positive_tabindex")
		}
		if severity.String() != "ERROR" {
			t.Errorf("expected ERROR severity, got %s", severity)
		}
	})

	t.Run("unknown severity names are skipped", func(t *testing.T) {
		t.Parallel()

		p := &Policy{
			Rules: map[string]RulePolicy{
				"rule-a": {Severity: "bogus"},
			},
		}
		if len(p.SeverityOverrides()) != 0 {
			t.Error("expected unknown severity to be skipped")
		}
	})
}

// TestLoadPolicyFile tests the LoadPolicyFile function.
func TestLoadPolicyFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrPolicyNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		p, err := LoadPolicyFile("/nonexistent/path/.a11yscan")
		if err == nil {
			t.Fatal("expected error for non-existent file")
		}
		if !errors.Is(err, ErrPolicyNotFound) {
			t.Fatalf("expected ErrPolicyNotFound, got: %v", err)
		}
		if p != nil {
			t.Error("expected nil policy when file not found")
		}
	})

	t.Run("loads valid YAML policy", func(t *testing.T) {
		tmpDir := t.TempDir()
		policyPath := filepath.Join(tmpDir, ".a11yscan")

		content := `rules:
  role_redundant:
    disabled: true
  positive_tabindex:
    severity: "error"
largeTextFontPx: 20
treatWarningsAsErrors: true
`
		if err := os.WriteFile(policyPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test policy: %v", err)
		}

		p, err := LoadPolicyFile(policyPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !p.Rules["role_redundant"].Disabled {
			t.Error("expected role_redundant to be disabled")
		}
		if p.Rules["positive_tabindex"].Severity != "error" {
			t.Errorf("expected severity 'error', got %q", p.Rules["positive_tabindex"].Severity)
		}
		if p.LargeTextFontPx != 20 {
			t.Errorf("expected largeTextFontPx 20, got %f", p.LargeTextFontPx)
		}
		if !p.TreatWarningsAsErrors {
			t.Error("expected treatWarningsAsErrors to be true")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		policyPath := filepath.Join(tmpDir, ".a11yscan")

		content := `invalid: yaml: content: [}`
		if err := os.WriteFile(policyPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test policy: %v", err)
		}

		_, err := LoadPolicyFile(policyPath)
		if err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Rules map", func(t *testing.T) {
		tmpDir := t.TempDir()
		policyPath := filepath.Join(tmpDir, ".a11yscan")

		content := `largeTextFontPx: 22
`
		if err := os.WriteFile(policyPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test policy: %v", err)
		}

		p, err := LoadPolicyFile(policyPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Rules == nil {
			t.Error("expected Rules map to be initialized")
		}
	})
}

// TestFindPolicyFile tests the FindPolicyFile function.
func TestFindPolicyFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		policyPath := filepath.Join(tmpDir, "custom.yaml")

		if err := os.WriteFile(policyPath, []byte("rules: {}"), 0600); err != nil {
			t.Fatalf("failed to write test policy: %v", err)
		}

		result := FindPolicyFile(policyPath)
		if result != policyPath {
			t.Errorf("expected %q, got %q", policyPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		result := FindPolicyFile("/nonexistent/path/policy.yaml")
		if result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("returns empty when no policy found", func(_ *testing.T) {
		result := FindPolicyFile("")
		// This may or may not find a policy depending on the system
		// Just ensure it doesn't panic
		_ = result
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir returns non-empty path", func(t *testing.T) {
		t.Parallel()

		dir := XDGDataDir()
		if dir == "" {
			t.Error("expected non-empty XDG data dir")
		}
	})

	t.Run("XDGConfigDir returns non-empty path", func(t *testing.T) {
		t.Parallel()

		dir := XDGConfigDir()
		if dir == "" {
			t.Error("expected non-empty XDG config dir")
		}
	})
}

// TestConfigAllFields tests that all Config fields can be set.
func TestConfigAllFields(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		LargeTextFontPx:       18.0,
		TreatWarningsAsErrors: true,
		Timeout:               60 * time.Second,
		Verbose:               true,
		BatchSize:             5,
		PolicyFilePath:        "/path/to/policy",
		Policy:                &Policy{},
		JSONReport:            true,
		ReportFile:            "/path/to/report.json",
		Targets:               []string{"index.html", "about.html"},
		DBDir:                 "/path/to/db",
		SaveToDB:              true,
		MaxFileSize:           1024,
	}

	if cfg.LargeTextFontPx != 18.0 {
		t.Errorf("unexpected LargeTextFontPx")
	}
	if !cfg.TreatWarningsAsErrors {
		t.Errorf("expected TreatWarningsAsErrors true")
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("unexpected Timeout")
	}
	if !cfg.Verbose {
		t.Errorf("expected Verbose true")
	}
	if cfg.BatchSize != 5 {
		t.Errorf("unexpected BatchSize")
	}
	if !cfg.JSONReport {
		t.Errorf("expected JSONReport true")
	}
	if !cfg.SaveToDB {
		t.Errorf("expected SaveToDB true")
	}
}
