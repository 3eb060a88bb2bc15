package checker

import (
	"context"
	"fmt"

	"github.com/a11yscan/a11yscan/internal/contrast"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// ContrastCheck evaluates text nodes against the WCAG AA contrast ratio
// thresholds.
//
// Design decision: Only nodes carrying their own text are evaluated, and
// only when the style collaborator resolved both colors. A missing color
// means inherited or image-backed values we cannot resolve to a flat color,
// and the check skips rather than guesses.
type ContrastCheck struct {
	// largeTextPx is the font size at which regular-weight text counts as
	// large for the reduced 3:1 threshold.
	largeTextPx float64
}

// NewContrastCheck creates a new ContrastCheck. A non-positive largeTextPx
// falls back to the WCAG default of 24px.
func NewContrastCheck(largeTextPx float64) *ContrastCheck {
	if largeTextPx <= 0 {
		largeTextPx = contrast.DefaultLargeTextPx
	}
	return &ContrastCheck{largeTextPx: largeTextPx}
}

// Name returns the check name.
func (c *ContrastCheck) Name() string {
	return "contrast"
}

// Category returns the check category.
func (c *ContrastCheck) Category() string {
	return model.CategoryContrast
}

// Check evaluates every text-bearing node with resolved colors.
func (c *ContrastCheck) Check(ctx context.Context, doc *dom.Document) ([]model.Violation, error) {
	violations := make([]model.Violation, 0)

	for id := dom.NodeID(0); int(id) < doc.Len(); id++ {
		select {
		case <-ctx.Done():
			return violations, ctx.Err()
		default:
		}

		if doc.OwnText(id) == "" {
			continue
		}
		style := doc.Style(id)
		if style == nil || style.Foreground == nil || style.Background == nil {
			continue
		}

		ratio := contrast.Ratio(*style.Foreground, *style.Background)
		large := contrast.IsLargeText(style.FontSizePx, style.FontWeight, c.largeTextPx)
		if contrast.Classify(ratio, large) {
			continue
		}

		minimum, class := contrast.MinRatioNormal, "normal"
		if large {
			minimum, class = contrast.MinRatioLarge, "large"
		}
		violations = append(violations, model.NewViolation(
			model.RuleContrastInsufficient,
			doc.Path(id),
			doc.Tag(id),
			fmt.Sprintf("contrast ratio %.2f:1 is below the %.1f:1 minimum for %s text", ratio, minimum, class),
		))
	}

	return violations, nil
}
