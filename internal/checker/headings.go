package checker

import (
	"context"
	"fmt"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// HeadingCheck validates the document's heading outline: exactly one
// level-1 heading, and no level jumps beyond the deepest level already
// established.
type HeadingCheck struct{}

// NewHeadingCheck creates a new HeadingCheck.
func NewHeadingCheck() *HeadingCheck {
	return &HeadingCheck{}
}

// Name returns the check name.
func (c *HeadingCheck) Name() string {
	return "headings"
}

// Category returns the check category.
func (c *HeadingCheck) Category() string {
	return model.CategoryStructure
}

// Check collects headings in document order and validates the outline.
// A document with no h1 gets a single violation located at the root, since
// there is no heading node to attach it to. Every h1 after the first is
// flagged at the extra heading itself.
func (c *HeadingCheck) Check(ctx context.Context, doc *dom.Document) ([]model.Violation, error) {
	violations := make([]model.Violation, 0)

	h1Count := 0
	maxSeen := 0
	for id := dom.NodeID(0); int(id) < doc.Len(); id++ {
		select {
		case <-ctx.Done():
			return violations, ctx.Err()
		default:
		}

		level, ok := doc.HeadingLevel(id)
		if !ok {
			continue
		}

		if level == 1 {
			h1Count++
			if h1Count > 1 {
				violations = append(violations, model.NewViolation(
					model.RuleHeadingMultipleH1,
					doc.Path(id),
					doc.Tag(id),
					"more than one level-1 heading; the page outline needs a single h1",
				))
			}
		}

		if level > maxSeen+1 {
			message := fmt.Sprintf("heading level jumps from h%d to h%d", maxSeen, level)
			if maxSeen == 0 {
				message = fmt.Sprintf("first heading is h%d", level)
			}
			violations = append(violations, model.NewViolation(
				model.RuleHeadingLevelSkipped,
				doc.Path(id),
				doc.Tag(id),
				message,
			))
		}
		if level > maxSeen {
			maxSeen = level
		}
	}

	if h1Count == 0 {
		violations = append(violations, model.NewViolation(
			model.RuleHeadingMissingH1,
			doc.Path(doc.Root()),
			doc.Tag(doc.Root()),
			"document has no level-1 heading",
		))
	}

	return violations, nil
}
