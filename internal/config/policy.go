package config

import (
	"fmt"

	"github.com/a11yscan/a11yscan/internal/model"
)

// RulePolicy holds the per-rule settings from the policy file.
type RulePolicy struct {
	// Disabled suppresses the rule entirely.
	Disabled bool `yaml:"disabled,omitempty"`

	// Severity overrides the rule's default severity.
	// Valid values are "info", "warning", and "error".
	Severity string `yaml:"severity,omitempty"`
}

// Policy represents the structure of the .a11yscan policy file.
// It lets a project tune the rule set without code changes: disable rules
// that don't apply, promote warnings it cares about, and adjust the
// large-text threshold to match its design system.
type Policy struct {
	// Rules maps rule identifiers to their per-rule settings.
	Rules map[string]RulePolicy `yaml:"rules,omitempty"`

	// LargeTextFontPx overrides the large-text font size threshold.
	// If zero, the global default is used.
	LargeTextFontPx float64 `yaml:"largeTextFontPx,omitempty"`

	// TreatWarningsAsErrors promotes warnings to errors in the summary.
	TreatWarningsAsErrors bool `yaml:"treatWarningsAsErrors,omitempty"`
}

// Validate checks that every severity override names a known severity.
func (p *Policy) Validate() error {
	for rule, rp := range p.Rules {
		if rp.Severity == "" {
			continue
		}
		if _, ok := model.ParseSeverity(rp.Severity); !ok {
			return fmt.Errorf("rule %q: %w", rule, ErrUnknownSeverity)
		}
	}
	return nil
}

// DisabledRules returns the set of rules the policy disables.
func (p *Policy) DisabledRules() map[model.RuleID]bool {
	disabled := make(map[model.RuleID]bool)
	for rule, rp := range p.Rules {
		if rp.Disabled {
			disabled[model.RuleID(rule)] = true
		}
	}
	return disabled
}

// SeverityOverrides returns the severity replacements the policy declares.
// Unknown severity names are skipped; Validate reports them upfront.
func (p *Policy) SeverityOverrides() map[model.RuleID]model.Severity {
	overrides := make(map[model.RuleID]model.Severity)
	for rule, rp := range p.Rules {
		if rp.Severity == "" {
			continue
		}
		if severity, ok := model.ParseSeverity(rp.Severity); ok {
			overrides[model.RuleID(rule)] = severity
		}
	}
	return overrides
}
