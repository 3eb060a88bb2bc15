package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/a11yscan/a11yscan/internal/aria"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// ReferenceCheck verifies that every ID token in aria-describedby,
// aria-labelledby, and aria-controls resolves to an element in the tree.
// A dangling token silently resolves to nothing at runtime, so the
// description, label, or controlled region is never announced.
type ReferenceCheck struct{}

// NewReferenceCheck creates a new ReferenceCheck.
func NewReferenceCheck() *ReferenceCheck {
	return &ReferenceCheck{}
}

// Name returns the check name.
func (c *ReferenceCheck) Name() string {
	return "references"
}

// Category returns the check category.
func (c *ReferenceCheck) Category() string {
	return model.CategoryARIA
}

// Check resolves every reference token in the document.
func (c *ReferenceCheck) Check(ctx context.Context, doc *dom.Document) ([]model.Violation, error) {
	violations := make([]model.Violation, 0)

	for id := dom.NodeID(0); int(id) < doc.Len(); id++ {
		select {
		case <-ctx.Done():
			return violations, ctx.Err()
		default:
		}

		for _, attr := range aria.ReferenceAttrs {
			raw, ok := doc.Attr(id, attr)
			if !ok {
				continue
			}
			for _, token := range strings.Fields(raw) {
				if _, ok := doc.ResolveID(token); ok {
					continue
				}
				violations = append(violations, model.NewViolation(
					model.RuleDanglingReference,
					doc.Path(id),
					doc.Tag(id),
					fmt.Sprintf("%s references %q but no element has that id", attr, token),
				))
			}
		}
	}

	return violations, nil
}
