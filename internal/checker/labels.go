package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/a11yscan/a11yscan/internal/aria"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// AccessibleNameCheck verifies that every control whose effective role
// requires an accessible name actually has one.
//
// The name is derived from the first non-empty source in priority order:
// aria-label, the first resolved aria-labelledby target's text, an
// associated label element, and finally the element's own text content for
// button and link roles.
type AccessibleNameCheck struct{}

// NewAccessibleNameCheck creates a new AccessibleNameCheck.
func NewAccessibleNameCheck() *AccessibleNameCheck {
	return &AccessibleNameCheck{}
}

// Name returns the check name.
func (c *AccessibleNameCheck) Name() string {
	return "labels"
}

// Category returns the check category.
func (c *AccessibleNameCheck) Category() string {
	return model.CategoryARIA
}

// Check computes the accessible name of every name-requiring control.
func (c *AccessibleNameCheck) Check(ctx context.Context, doc *dom.Document) ([]model.Violation, error) {
	violations := make([]model.Violation, 0)

	for id := dom.NodeID(0); int(id) < doc.Len(); id++ {
		select {
		case <-ctx.Done():
			return violations, ctx.Err()
		default:
		}

		role := effectiveRole(doc, id)
		if role == "" || !aria.RequiresName(role) {
			continue
		}
		if accessibleName(doc, id, role) != "" {
			continue
		}

		violations = append(violations, model.NewViolation(
			model.RuleMissingAccessibleName,
			doc.Path(id),
			doc.Tag(id),
			fmt.Sprintf("element with role %q has no accessible name from any source", role),
		))
	}

	return violations, nil
}

// effectiveRole returns the node's explicit role when one is declared and
// valid, otherwise its implicit native role.
func effectiveRole(doc *dom.Document, id dom.NodeID) string {
	if explicit := explicitRole(doc, id); explicit != "" && aria.IsValidRole(explicit) {
		return explicit
	}
	return aria.ImplicitRole(doc.Tag(id), func(name string) (string, bool) {
		return doc.Attr(id, name)
	})
}

// accessibleName walks the name computation chain and returns the first
// non-empty source, or "" when every source is empty.
func accessibleName(doc *dom.Document, id dom.NodeID, role string) string {
	if label, ok := doc.Attr(id, "aria-label"); ok {
		if name := strings.TrimSpace(label); name != "" {
			return name
		}
	}

	if raw, ok := doc.Attr(id, "aria-labelledby"); ok {
		for _, token := range strings.Fields(raw) {
			target, ok := doc.ResolveID(token)
			if !ok {
				continue
			}
			if name := doc.Text(target); name != "" {
				return name
			}
		}
	}

	if label, ok := doc.LabelFor(id); ok {
		if name := doc.Text(label); name != "" {
			return name
		}
	}

	// Subtree text names only content-labelled roles; text inside a
	// textbox is its value, not its name.
	if role == "button" || role == "link" {
		return doc.Text(id)
	}
	return ""
}
