package dom

import (
	"errors"
	"strings"
)

// ErrNilRoot is returned when a document is built from a nil root.
// This is the only input the package rejects outright; everything else
// degrades to a well-formed (possibly empty-ish) document.
var ErrNilRoot = errors.New("dom: nil root node")

// NodeID is an integer handle into the document's node arena.
// Because nodes are appended during a single pre-order traversal at build
// time, ascending NodeID order is exactly document order. Checks exploit
// this: iterating 0..Len()-1 visits nodes as a reader would.
type NodeID int

// InvalidNode is the handle returned when a lookup fails.
const InvalidNode NodeID = -1

// FontWeight is the computed font weight subset relevant to contrast rules.
type FontWeight int

const (
	// FontWeightNormal is a regular-weight font.
	FontWeightNormal FontWeight = iota
	// FontWeightBold is a bold font; bold text qualifies as "large" at a
	// smaller pixel size.
	FontWeightBold
)

// RGB is a color with 8-bit channels. The [0,255] invariant is enforced by
// the type itself.
type RGB struct {
	R, G, B uint8
}

// Style is the computed style subset supplied by the external
// style-resolution collaborator. Color pointers are nil when the value is
// inherited or otherwise unresolved; checks skip rather than guess.
type Style struct {
	// FontSizePx is the computed font size in CSS pixels.
	FontSizePx float64

	// FontWeight is the computed font weight.
	FontWeight FontWeight

	// Foreground is the resolved text color, or nil if unknown.
	Foreground *RGB

	// Background is the resolved flat background color, or nil if unknown
	// (including image and gradient backgrounds, which are never resolved
	// to a flat color).
	Background *RGB
}

// Attr is a single attribute name/value pair. Names are stored lowercased.
type Attr struct {
	Name  string
	Value string
}

// BuildNode is the mutable input shape handed to Build by a parser or a
// test. Once Build returns, the resulting Document is immutable and shares
// nothing with the BuildNode tree.
type BuildNode struct {
	// Tag is the element's tag name.
	Tag string

	// Attrs are the element's attributes in source order.
	Attrs []Attr

	// Text is the element's own direct text content.
	Text string

	// Style is the computed style subset, or nil when unavailable.
	Style *Style

	// Children are the element's child elements in source order.
	Children []*BuildNode
}

// nodeRecord is one arena slot.
type nodeRecord struct {
	tag      string
	attrs    []Attr
	text     string
	style    *Style
	parent   NodeID
	children []NodeID
}

// Document is a read-only tree over a parsed markup document.
//
// Design decision: Nodes live in an arena of records indexed by integer
// handle, with parent/child relationships stored as index slices. This
// avoids ownership ambiguity, makes location paths cheap to compute, and
// gives every check the same zero-copy view of the tree for concurrent
// reads.
type Document struct {
	nodes []nodeRecord

	// ids maps the value of each id attribute to the first node carrying
	// it, in document order. Built once so ARIA reference resolution is a
	// map lookup rather than a tree walk per token.
	ids map[string]NodeID
}

// Build constructs an immutable Document from a BuildNode tree.
// Nodes are appended in pre-order, so NodeID order is document order.
// Attribute names are lowercased; on duplicate names the first wins.
func Build(root *BuildNode) (*Document, error) {
	if root == nil {
		return nil, ErrNilRoot
	}

	doc := &Document{
		nodes: make([]nodeRecord, 0, 16),
		ids:   make(map[string]NodeID),
	}
	doc.append(root, InvalidNode)
	return doc, nil
}

// append copies one BuildNode into the arena and recurses into its children.
func (d *Document) append(bn *BuildNode, parent NodeID) NodeID {
	id := NodeID(len(d.nodes))

	attrs := make([]Attr, 0, len(bn.Attrs))
	seen := make(map[string]bool, len(bn.Attrs))
	for _, a := range bn.Attrs {
		name := strings.ToLower(a.Name)
		if seen[name] {
			continue
		}
		seen[name] = true
		attrs = append(attrs, Attr{Name: name, Value: a.Value})
	}

	d.nodes = append(d.nodes, nodeRecord{
		tag:    strings.ToLower(bn.Tag),
		attrs:  attrs,
		text:   bn.Text,
		style:  bn.Style,
		parent: parent,
	})

	if idAttr, ok := d.Attr(id, "id"); ok && idAttr != "" {
		if _, exists := d.ids[idAttr]; !exists {
			d.ids[idAttr] = id
		}
	}

	for _, child := range bn.Children {
		if child == nil {
			continue
		}
		childID := d.append(child, id)
		d.nodes[id].children = append(d.nodes[id].children, childID)
	}

	return id
}

// Root returns the root node's handle.
func (d *Document) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the document.
func (d *Document) Len() int {
	return len(d.nodes)
}

// valid reports whether id is a live handle.
func (d *Document) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes)
}

// Tag returns the lowercase tag name of the node.
func (d *Document) Tag(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	return d.nodes[id].tag
}

// Children returns the node's child handles in document order.
// The returned slice must not be modified.
func (d *Document) Children(id NodeID) []NodeID {
	if !d.valid(id) {
		return nil
	}
	return d.nodes[id].children
}

// Parent returns the node's parent, or InvalidNode for the root.
func (d *Document) Parent(id NodeID) NodeID {
	if !d.valid(id) {
		return InvalidNode
	}
	return d.nodes[id].parent
}

// Attr returns the value of the named attribute. Lookup is case-insensitive.
func (d *Document) Attr(id NodeID, name string) (string, bool) {
	if !d.valid(id) {
		return "", false
	}
	name = strings.ToLower(name)
	for _, a := range d.nodes[id].attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the node carries the named attribute.
func (d *Document) HasAttr(id NodeID, name string) bool {
	_, ok := d.Attr(id, name)
	return ok
}

// Attrs returns the node's attributes as a lowercase-keyed map.
// Used where a lookup table is more convenient than repeated Attr calls.
func (d *Document) Attrs(id NodeID) map[string]string {
	if !d.valid(id) {
		return nil
	}
	m := make(map[string]string, len(d.nodes[id].attrs))
	for _, a := range d.nodes[id].attrs {
		m[a.Name] = a.Value
	}
	return m
}

// Style returns the node's computed style subset, or nil when the external
// style collaborator supplied none.
func (d *Document) Style(id NodeID) *Style {
	if !d.valid(id) {
		return nil
	}
	return d.nodes[id].style
}

// OwnText returns the node's direct text content, whitespace-trimmed.
func (d *Document) OwnText(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	return strings.TrimSpace(d.nodes[id].text)
}

// Text returns the concatenated text content of the node's subtree with
// runs of whitespace collapsed, mirroring how assistive technology flattens
// text for announcement.
func (d *Document) Text(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	var sb strings.Builder
	d.collectText(id, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func (d *Document) collectText(id NodeID, sb *strings.Builder) {
	sb.WriteString(d.nodes[id].text)
	sb.WriteByte(' ')
	for _, child := range d.nodes[id].children {
		d.collectText(child, sb)
	}
}

// Path returns the sequence of child indices from the root to the node.
// Re-applying the path via Resolve yields the same node.
func (d *Document) Path(id NodeID) []int {
	if !d.valid(id) {
		return nil
	}
	var rev []int
	for id != 0 {
		parent := d.nodes[id].parent
		for i, child := range d.nodes[parent].children {
			if child == id {
				rev = append(rev, i)
				break
			}
		}
		id = parent
	}
	path := make([]int, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	return path
}

// Resolve walks a location path from the root and returns the node it
// lands on. Returns InvalidNode and false if any index is out of range.
func (d *Document) Resolve(path []int) (NodeID, bool) {
	if len(d.nodes) == 0 {
		return InvalidNode, false
	}
	id := d.Root()
	for _, idx := range path {
		children := d.nodes[id].children
		if idx < 0 || idx >= len(children) {
			return InvalidNode, false
		}
		id = children[idx]
	}
	return id, true
}

// ResolveID returns the first node in document order whose id attribute
// equals token.
func (d *Document) ResolveID(token string) (NodeID, bool) {
	id, ok := d.ids[token]
	return id, ok
}

// IsFocusableByDefault reports whether the element receives keyboard focus
// without author intervention: native interactive tags (a link with an
// href, button, input, select, textarea) and any element assigned a
// tabindex attribute.
func (d *Document) IsFocusableByDefault(id NodeID) bool {
	if !d.valid(id) {
		return false
	}
	switch d.nodes[id].tag {
	case "button", "input", "select", "textarea":
		return true
	case "a":
		return d.HasAttr(id, "href")
	}
	return d.HasAttr(id, "tabindex")
}

// HeadingLevel returns the heading level (1-6) for h1..h6 elements.
// The second return value is false for non-heading elements.
func (d *Document) HeadingLevel(id NodeID) (int, bool) {
	tag := d.Tag(id)
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0'), true
	}
	return 0, false
}

// LabelFor returns the first label element whose for attribute references
// the given node's id, if any. Used in the accessible name computation for
// native form controls.
func (d *Document) LabelFor(id NodeID) (NodeID, bool) {
	target, ok := d.Attr(id, "id")
	if !ok || target == "" {
		return InvalidNode, false
	}
	for candidate := NodeID(0); int(candidate) < len(d.nodes); candidate++ {
		if d.nodes[candidate].tag != "label" {
			continue
		}
		if forAttr, ok := d.Attr(candidate, "for"); ok && forAttr == target {
			return candidate, true
		}
	}
	return InvalidNode, false
}
