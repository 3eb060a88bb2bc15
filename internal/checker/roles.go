package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/a11yscan/a11yscan/internal/aria"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
)

// RoleCheck validates explicit role attributes against the ARIA vocabulary
// and flags roles that merely restate the element's implicit native role.
type RoleCheck struct{}

// NewRoleCheck creates a new RoleCheck.
func NewRoleCheck() *RoleCheck {
	return &RoleCheck{}
}

// Name returns the check name.
func (c *RoleCheck) Name() string {
	return "roles"
}

// Category returns the check category.
func (c *RoleCheck) Category() string {
	return model.CategoryARIA
}

// Check validates every role attribute token in the document.
func (c *RoleCheck) Check(ctx context.Context, doc *dom.Document) ([]model.Violation, error) {
	violations := make([]model.Violation, 0)

	for id := dom.NodeID(0); int(id) < doc.Len(); id++ {
		select {
		case <-ctx.Done():
			return violations, ctx.Err()
		default:
		}

		raw, ok := doc.Attr(id, "role")
		if !ok {
			continue
		}

		implicit := aria.ImplicitRole(doc.Tag(id), func(name string) (string, bool) {
			return doc.Attr(id, name)
		})

		for _, token := range strings.Fields(raw) {
			if !aria.IsValidRole(token) {
				violations = append(violations, model.NewViolation(
					model.RuleRoleUnknown,
					doc.Path(id),
					doc.Tag(id),
					fmt.Sprintf("role=%q is not a known ARIA role token", token),
				))
				continue
			}
			if implicit != "" && strings.EqualFold(token, implicit) {
				violations = append(violations, model.NewViolation(
					model.RuleRoleRedundant,
					doc.Path(id),
					doc.Tag(id),
					fmt.Sprintf("role=%q duplicates the implicit role of <%s>", token, doc.Tag(id)),
				))
			}
		}
	}

	return violations, nil
}
