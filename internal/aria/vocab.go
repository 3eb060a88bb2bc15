// Package aria holds the ARIA vocabulary lookup tables used by the checks.
//
// Design decision: All tables are package-level maps initialized once and
// never mutated, so concurrent checks can read them without synchronization.
// The tables deliberately live apart from the checks: the vocabulary changes
// when the ARIA specification changes, the checks change when our rules do.
package aria

import "strings"

// validRoles is the set of role tokens defined by WAI-ARIA 1.2, including
// abstract document structure, widget, landmark, and live-region roles.
var validRoles = map[string]bool{
	// Document structure
	"application": true, "article": true, "blockquote": true, "caption": true,
	"cell": true, "code": true, "columnheader": true, "definition": true,
	"deletion": true, "directory": true, "document": true, "emphasis": true,
	"feed": true, "figure": true, "generic": true, "group": true,
	"heading": true, "img": true, "insertion": true, "list": true,
	"listitem": true, "math": true, "meter": true, "none": true,
	"note": true, "paragraph": true, "presentation": true, "row": true,
	"rowgroup": true, "rowheader": true, "separator": true, "strong": true,
	"subscript": true, "superscript": true, "table": true, "term": true,
	"time": true, "toolbar": true, "tooltip": true,

	// Widgets
	"button": true, "checkbox": true, "combobox": true, "gridcell": true,
	"link": true, "listbox": true, "menuitem": true, "menuitemcheckbox": true,
	"menuitemradio": true, "option": true, "progressbar": true, "radio": true,
	"scrollbar": true, "searchbox": true, "slider": true, "spinbutton": true,
	"switch": true, "tab": true, "tabpanel": true, "textbox": true,
	"treeitem": true,

	// Composite widgets
	"grid": true, "menu": true, "menubar": true,
	"radiogroup": true, "tablist": true, "tree": true, "treegrid": true,

	// Landmarks
	"banner": true, "complementary": true, "contentinfo": true, "form": true,
	"main": true, "navigation": true, "region": true, "search": true,

	// Live regions
	"alert": true, "alertdialog": true, "dialog": true, "log": true,
	"marquee": true, "status": true, "timer": true,
}

// interactiveRoles is the set of roles that promise keyboard operability.
// An element declaring one of these must be reachable by keyboard focus.
var interactiveRoles = map[string]bool{
	"button":   true,
	"checkbox": true,
	"radio":    true,
	"switch":   true,
	"tab":      true,
	"link":     true,
}

// nameRequiredRoles is the set of roles that must expose a non-empty
// accessible name.
var nameRequiredRoles = map[string]bool{
	"button":   true,
	"checkbox": true,
	"radio":    true,
	"textbox":  true,
	"combobox": true,
}

// liveValues is the set of valid aria-live politeness levels.
var liveValues = map[string]bool{
	"off":       true,
	"polite":    true,
	"assertive": true,
}

// BooleanStateAttrs maps boolean ARIA state attributes to whether they
// additionally permit the "mixed" value. Only aria-checked does.
var BooleanStateAttrs = map[string]bool{
	"aria-expanded": false,
	"aria-checked":  true,
	"aria-selected": false,
	"aria-pressed":  false,
	"aria-hidden":   false,
}

// ReferenceAttrs lists the ARIA attributes whose values are
// whitespace-separated ID token lists that must resolve within the document.
var ReferenceAttrs = []string{
	"aria-describedby",
	"aria-labelledby",
	"aria-controls",
}

// IsValidRole reports whether token is a known ARIA role.
// Matching is case-insensitive, as role tokens are defined to be.
func IsValidRole(token string) bool {
	return validRoles[strings.ToLower(token)]
}

// IsInteractiveRole reports whether role promises keyboard operability.
func IsInteractiveRole(role string) bool {
	return interactiveRoles[strings.ToLower(role)]
}

// RequiresName reports whether elements with this role must have an
// accessible name.
func RequiresName(role string) bool {
	return nameRequiredRoles[strings.ToLower(role)]
}

// IsValidLiveValue reports whether value is a valid aria-live token.
func IsValidLiveValue(value string) bool {
	return liveValues[value]
}

// IsValidStateValue reports whether value is legal for the given boolean
// state attribute. Unknown attributes are not boolean states and return true.
func IsValidStateValue(attr, value string) bool {
	allowMixed, ok := BooleanStateAttrs[strings.ToLower(attr)]
	if !ok {
		return true
	}
	if value == "true" || value == "false" {
		return true
	}
	return allowMixed && value == "mixed"
}

// ImplicitRole returns the implicit ARIA role of an element given its tag
// and attributes, or "" when the element has no interesting implicit role.
// The attrs function looks up an attribute by lowercase name.
//
// The mapping covers the elements our rules care about; it is not the
// complete HTML-AAM table.
func ImplicitRole(tag string, attr func(name string) (string, bool)) string {
	switch strings.ToLower(tag) {
	case "a":
		if _, ok := attr("href"); ok {
			return "link"
		}
		return ""
	case "button":
		return "button"
	case "nav":
		return "navigation"
	case "main":
		return "main"
	case "header":
		return "banner"
	case "footer":
		return "contentinfo"
	case "aside":
		return "complementary"
	case "form":
		return "form"
	case "section":
		return "region"
	case "img":
		return "img"
	case "ul", "ol":
		return "list"
	case "li":
		return "listitem"
	case "table":
		return "table"
	case "textarea":
		return "textbox"
	case "select":
		return "combobox"
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "heading"
	case "input":
		typ, _ := attr("type")
		switch strings.ToLower(typ) {
		case "checkbox":
			return "checkbox"
		case "radio":
			return "radio"
		case "button", "submit", "reset":
			return "button"
		case "search":
			return "searchbox"
		case "range":
			return "slider"
		case "number":
			return "spinbutton"
		case "hidden":
			return ""
		default:
			// text, email, url, tel, password and the unset default
			return "textbox"
		}
	default:
		return ""
	}
}
