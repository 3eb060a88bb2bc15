// Package checker implements the conformance rules and the runner that
// coordinates them.
//
// # Architecture
//
// Each family of rules lives in its own Check implementation: contrast,
// tab order, headings, roles, references, accessible names, and ARIA
// states. Every check is a pure function of the immutable document tree,
// which is what lets the Runner execute them concurrently and merge their
// findings at a single join point.
//
// # Components
//
//   - Check: The uniform contract each rule family implements
//   - Runner: Registers the built-in checks, fans them out, applies rule
//     policy (disabled rules, severity overrides), and finalizes the report
//   - TabOrder: The effective keyboard traversal derivation, exposed for
//     callers that want the sequence itself rather than the violations
//
// # Error handling
//
// There are no fatal errors inside a check. Malformed attribute values
// fall back to documented defaults or become reported violations, never an
// aborted run. The only inputs the package rejects are a nil document and
// a cancelled context.
package checker
