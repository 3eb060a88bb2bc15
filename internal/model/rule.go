package model

import "sort"

// RuleID identifies a conformance rule.
//
// Design decision: We use string-typed identifiers rather than integers
// because they serialize naturally to JSON and the database, they are stable
// across releases even when rules are added or removed, and the deterministic
// report ordering needs a lexicographic comparison anyway.
type RuleID string

// Conformance rule identifiers.
const (
	// RuleContrastInsufficient fires when the contrast ratio between a text
	// node's foreground and background colors is below the WCAG AA threshold.
	RuleContrastInsufficient RuleID = "contrast_insufficient"

	// RulePositiveTabindex fires on any element with tabindex greater than
	// zero. Positive values force an ordering pass before all zero/default
	// elements, which is almost always unintended.
	RulePositiveTabindex RuleID = "positive_tabindex"

	// RuleInteractiveNotFocusable fires on elements declaring an interactive
	// ARIA role with no way to receive keyboard focus.
	RuleInteractiveNotFocusable RuleID = "interactive_role_not_focusable"

	// RuleHeadingMissingH1 fires when the document has no level-1 heading.
	RuleHeadingMissingH1 RuleID = "heading_missing_h1"

	// RuleHeadingMultipleH1 fires on every level-1 heading after the first.
	RuleHeadingMultipleH1 RuleID = "heading_multiple_h1"

	// RuleHeadingLevelSkipped fires when a heading's level exceeds the
	// maximum level seen so far by more than one.
	RuleHeadingLevelSkipped RuleID = "heading_level_skipped"

	// RuleRoleUnknown fires when a role attribute value is not a known ARIA
	// role token.
	RuleRoleUnknown RuleID = "role_unknown"

	// RuleRoleRedundant fires when a role attribute duplicates the element's
	// implicit native role.
	RuleRoleRedundant RuleID = "role_redundant"

	// RuleDanglingReference fires when an ID token in aria-describedby,
	// aria-labelledby, or aria-controls does not resolve to any element.
	RuleDanglingReference RuleID = "aria_reference_dangling"

	// RuleMissingAccessibleName fires when a control has no accessible name
	// from any source in the computation chain.
	RuleMissingAccessibleName RuleID = "accessible_name_missing"

	// RuleLiveRegionInvalid fires when aria-live has a value outside
	// {off, polite, assertive}.
	RuleLiveRegionInvalid RuleID = "aria_live_invalid"

	// RuleStateInvalid fires when a boolean ARIA state attribute has a value
	// other than "true" or "false" ("mixed" is additionally allowed for
	// aria-checked).
	RuleStateInvalid RuleID = "aria_state_invalid"
)

// RuleInfo contains metadata about a rule including its default severity,
// impact description, and remediation recommendation.
type RuleInfo struct {
	Severity       Severity
	Category       string
	Impact         string
	Recommendation string
}

// Rule category constants. Categories group rules for reporting.
const (
	// CategoryContrast groups color contrast rules.
	CategoryContrast = "contrast"
	// CategoryKeyboard groups keyboard and focus order rules.
	CategoryKeyboard = "keyboard"
	// CategoryStructure groups document structure rules.
	CategoryStructure = "structure"
	// CategoryARIA groups ARIA attribute rules.
	CategoryARIA = "aria"
)

// ruleInfoMapping maps rule identifiers to their metadata.
// This centralized mapping ensures consistent severity assessment across
// the application.
//
// Design decision: We use a map rather than embedding severity in each check
// because:
// 1. It allows policy files to override severities without touching checks
// 2. It provides a single source of truth for default severities
// 3. It makes it easy to generate rule documentation
var ruleInfoMapping = map[RuleID]RuleInfo{
	RuleContrastInsufficient: {
		Severity:       SeverityError,
		Category:       CategoryContrast,
		Impact:         "Text with insufficient contrast is unreadable for users with low vision and hard to read for everyone in bright environments.",
		Recommendation: "Adjust foreground or background color until the ratio reaches 4.5:1 for normal text or 3:1 for large text.",
	},
	RulePositiveTabindex: {
		Severity:       SeverityWarning,
		Category:       CategoryKeyboard,
		Impact:         "Positive tabindex values pull elements ahead of every default-order element, producing a tab order that diverges from the visual layout.",
		Recommendation: "Use tabindex=\"0\" and let the document order define the traversal sequence; reorder the markup instead of forcing priorities.",
	},
	RuleInteractiveNotFocusable: {
		Severity:       SeverityError,
		Category:       CategoryKeyboard,
		Impact:         "A widget announced as interactive but unreachable by keyboard is operable by mouse only, excluding keyboard and switch users entirely.",
		Recommendation: "Add tabindex=\"0\" to the element or use the equivalent native element, which is focusable by default.",
	},
	RuleHeadingMissingH1: {
		Severity:       SeverityError,
		Category:       CategoryStructure,
		Impact:         "Screen reader users navigate by headings; without a level-1 heading the page has no announced starting point.",
		Recommendation: "Add exactly one h1 describing the page's main topic.",
	},
	RuleHeadingMultipleH1: {
		Severity:       SeverityError,
		Category:       CategoryStructure,
		Impact:         "Multiple level-1 headings make the page outline ambiguous and heading navigation unpredictable.",
		Recommendation: "Keep a single h1 and demote the others to h2 within their sections.",
	},
	RuleHeadingLevelSkipped: {
		Severity:       SeverityError,
		Category:       CategoryStructure,
		Impact:         "A skipped heading level (for example h2 followed by h4) breaks the document outline that assistive technology exposes for navigation.",
		Recommendation: "Use consecutive heading levels; style headings with CSS instead of choosing a level for its appearance.",
	},
	RuleRoleUnknown: {
		Severity:       SeverityError,
		Category:       CategoryARIA,
		Impact:         "An unrecognized role token is ignored by assistive technology, so the element falls back to semantics the author did not intend.",
		Recommendation: "Use a role token from the ARIA specification, or remove the attribute if the native element already conveys the semantics.",
	},
	RuleRoleRedundant: {
		Severity:       SeverityInfo,
		Category:       CategoryARIA,
		Impact:         "The role duplicates the element's implicit native role. Harmless, but it adds maintenance noise.",
		Recommendation: "Remove the role attribute; the native element already exposes this role.",
	},
	RuleDanglingReference: {
		Severity:       SeverityError,
		Category:       CategoryARIA,
		Impact:         "An ARIA reference to a nonexistent ID silently resolves to nothing, so the description, label, or controlled region is never announced.",
		Recommendation: "Point the attribute at an existing element ID, or remove the stale token.",
	},
	RuleMissingAccessibleName: {
		Severity:       SeverityError,
		Category:       CategoryARIA,
		Impact:         "A control without an accessible name is announced only by its role, leaving assistive-technology users guessing what it does.",
		Recommendation: "Provide a visible label, an aria-label, or an aria-labelledby reference to descriptive text.",
	},
	RuleLiveRegionInvalid: {
		Severity:       SeverityError,
		Category:       CategoryARIA,
		Impact:         "An invalid aria-live value disables live-region announcements, so dynamic updates go unnoticed by screen reader users.",
		Recommendation: "Use \"polite\" for non-urgent updates, \"assertive\" for urgent ones, or \"off\" to opt out.",
	},
	RuleStateInvalid: {
		Severity:       SeverityError,
		Category:       CategoryARIA,
		Impact:         "Boolean ARIA states with unexpected values are ignored or misreported, so the widget's announced state diverges from its real state.",
		Recommendation: "Set the attribute to exactly \"true\" or \"false\" (\"mixed\" is valid only for aria-checked).",
	},
}

// GetRuleInfo returns the full rule metadata for a rule identifier.
// Returns a default RuleInfo with SeverityInfo if the rule is not in the
// mapping.
func GetRuleInfo(rule RuleID) RuleInfo {
	if info, ok := ruleInfoMapping[rule]; ok {
		return info
	}
	return RuleInfo{
		Severity:       SeverityInfo,
		Category:       CategoryARIA,
		Impact:         "Unknown rule. Review manually.",
		Recommendation: "Investigate the violation and assess impact.",
	}
}

// GetSeverity returns the default severity for a rule identifier.
// Returns SeverityInfo if the rule is not in the mapping.
func GetSeverity(rule RuleID) Severity {
	if info, ok := ruleInfoMapping[rule]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// AllRules returns every known rule identifier in lexicographic order.
// Used by the init command to generate a documented policy template and by
// tests to verify catalog completeness.
func AllRules() []RuleID {
	rules := make([]RuleID, 0, len(ruleInfoMapping))
	for id := range ruleInfoMapping {
		rules = append(rules, id)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i] < rules[j] })
	return rules
}
