// Package model defines the core data structures used throughout a11yscan.
//
// This package contains the following main types:
//   - Severity: How serious a violation is (info, warning, error)
//   - RuleID: Stable identifiers for conformance rules, with a metadata catalog
//   - Violation: A single located conformance defect
//   - Report: The deduplicated, deterministically sorted result of a run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (checker, report, database) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
