package checker

import (
	"context"
	"fmt"

	"github.com/a11yscan/a11yscan/internal/aria"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// StateCheck validates aria-live politeness levels and the boolean ARIA
// state attributes. A state with an unexpected value is ignored or
// misreported by assistive technology, so the announced state diverges from
// the widget's real state.
type StateCheck struct{}

// NewStateCheck creates a new StateCheck.
func NewStateCheck() *StateCheck {
	return &StateCheck{}
}

// Name returns the check name.
func (c *StateCheck) Name() string {
	return "states"
}

// Category returns the check category.
func (c *StateCheck) Category() string {
	return model.CategoryARIA
}

// Check validates every live-region and boolean state attribute value.
func (c *StateCheck) Check(ctx context.Context, doc *dom.Document) ([]model.Violation, error) {
	violations := make([]model.Violation, 0)

	for id := dom.NodeID(0); int(id) < doc.Len(); id++ {
		select {
		case <-ctx.Done():
			return violations, ctx.Err()
		default:
		}

		if value, ok := doc.Attr(id, "aria-live"); ok && !aria.IsValidLiveValue(value) {
			violations = append(violations, model.NewViolation(
				model.RuleLiveRegionInvalid,
				doc.Path(id),
				doc.Tag(id),
				fmt.Sprintf("aria-live=%q is not one of off, polite, assertive", value),
			))
		}

		for name, value := range doc.Attrs(id) {
			if _, isState := aria.BooleanStateAttrs[name]; !isState {
				continue
			}
			if aria.IsValidStateValue(name, value) {
				continue
			}
			violations = append(violations, model.NewViolation(
				model.RuleStateInvalid,
				doc.Path(id),
				doc.Tag(id),
				fmt.Sprintf("%s=%q is not a valid boolean state value", name, value),
			))
		}
	}

	return violations, nil
}
