package checker

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/a11yscan/a11yscan/internal/aria"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// TabEntry is one stop in the keyboard traversal analysis: a node, its
// resolved tabindex, and its document-order position.
type TabEntry struct {
	// Node is the element's handle in the document arena.
	Node dom.NodeID

	// TabIndex is the resolved tabindex: the parsed attribute value when
	// present and well-formed, otherwise 0 for default-focusable elements.
	TabIndex int

	// Position is the node's document-order position, used to break ties.
	Position int

	// Programmatic marks a negative-tabindex entry: the node can receive
	// focus from script but is unreachable by the Tab key.
	Programmatic bool
}

// TabOrder derives the effective keyboard traversal sequence from a single
// document-order pass: entries with positive tabindex first, ascending by
// value with ties broken by document order, then the zero/default entries in
// document order. Entries with a negative tabindex do not participate in the
// traversal; they are kept at the tail of the result in document order,
// marked Programmatic, so callers can still see every focusable node.
func TabOrder(doc *dom.Document) []TabEntry {
	var entries []TabEntry
	for id := dom.NodeID(0); int(id) < doc.Len(); id++ {
		index, focusable := resolveTabIndex(doc, id)
		if !focusable {
			continue
		}
		entries = append(entries, TabEntry{
			Node:         id,
			TabIndex:     index,
			Position:     int(id),
			Programmatic: index < 0,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Programmatic != b.Programmatic {
			return !a.Programmatic
		}
		if a.Programmatic {
			return a.Position < b.Position
		}
		if (a.TabIndex > 0) != (b.TabIndex > 0) {
			return a.TabIndex > 0
		}
		if a.TabIndex > 0 && a.TabIndex != b.TabIndex {
			return a.TabIndex < b.TabIndex
		}
		return a.Position < b.Position
	})
	return entries
}

// resolveTabIndex returns the node's effective tabindex and whether the node
// participates in focus at all. A malformed tabindex value is treated as
// absent, falling back to the default-focusability rule.
func resolveTabIndex(doc *dom.Document, id dom.NodeID) (int, bool) {
	if raw, ok := doc.Attr(id, "tabindex"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return n, true
		}
	}
	if doc.IsFocusableByDefault(id) {
		return 0, true
	}
	return 0, false
}

// TabOrderCheck flags keyboard traversal anomalies: explicit positive
// tabindex values, and interactive ARIA roles on elements that cannot
// receive keyboard focus.
type TabOrderCheck struct{}

// NewTabOrderCheck creates a new TabOrderCheck.
func NewTabOrderCheck() *TabOrderCheck {
	return &TabOrderCheck{}
}

// Name returns the check name.
func (c *TabOrderCheck) Name() string {
	return "taborder"
}

// Category returns the check category.
func (c *TabOrderCheck) Category() string {
	return model.CategoryKeyboard
}

// Check walks the tree once flagging both rule families.
func (c *TabOrderCheck) Check(ctx context.Context, doc *dom.Document) ([]model.Violation, error) {
	violations := make([]model.Violation, 0)

	for id := dom.NodeID(0); int(id) < doc.Len(); id++ {
		select {
		case <-ctx.Done():
			return violations, ctx.Err()
		default:
		}

		if raw, ok := doc.Attr(id, "tabindex"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
				violations = append(violations, model.NewViolation(
					model.RulePositiveTabindex,
					doc.Path(id),
					doc.Tag(id),
					fmt.Sprintf("tabindex=%d forces this element ahead of the natural traversal order", n),
				))
			}
		}

		role := explicitRole(doc, id)
		if role == "" || !aria.IsInteractiveRole(role) {
			continue
		}
		if index, focusable := resolveTabIndex(doc, id); !focusable || index < 0 {
			violations = append(violations, model.NewViolation(
				model.RuleInteractiveNotFocusable,
				doc.Path(id),
				doc.Tag(id),
				fmt.Sprintf("role=%q promises keyboard interaction but the element cannot receive focus", role),
			))
		}
	}

	return violations, nil
}

// explicitRole returns the first token of the node's role attribute,
// lowercased, or "" when absent.
func explicitRole(doc *dom.Document, id dom.NodeID) string {
	raw, ok := doc.Attr(id, "role")
	if !ok {
		return ""
	}
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return ""
	}
	return strings.ToLower(tokens[0])
}
