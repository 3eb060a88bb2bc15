// Package dom provides the read-only document tree the checks analyze.
//
// # Architecture
//
// The package is designed around the Document type, an arena of node
// records indexed by integer handles. Parent/child relationships are
// stored as index slices, and because nodes are appended during a single
// pre-order traversal at build time, ascending handle order is document
// order.
//
// Design decision: We use an arena rather than a pointer-linked tree
// because:
//  1. Integer handles sidestep ownership and cycle questions entirely
//  2. Location paths are cheap to compute and compare
//  3. Every check gets a zero-copy immutable view safe for concurrent reads
//
// # Components
//
//   - Document: The immutable arena-backed tree with attribute, text,
//     style, and focusability accessors
//   - BuildNode: The mutable input shape for Build, used by the parser
//     adapter and by tests
//   - Parse: The golang.org/x/net/html adapter, including inline-style
//     reduction to the computed-style subset
//
// # Immutability
//
// A Document is constructed once and never mutated. No method exposes
// interior state for modification, which is what lets the checker run
// every check concurrently against the same tree without locks.
package dom
