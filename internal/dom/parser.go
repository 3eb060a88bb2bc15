package dom

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads HTML and builds an immutable Document from its element tree.
//
// Design decision: We use golang.org/x/net/html for parsing rather than a
// hand-rolled tokenizer because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. Standard library extension, well-maintained
//
// Only element and text nodes survive the conversion; comments, doctypes,
// and processing instructions carry no accessibility semantics. Inline
// style attributes are reduced to the computed-style subset the checks
// consume (colors, font size, font weight). A full cascade is the external
// style collaborator's job; inline styles are simply the subset we can
// resolve without one.
func Parse(content io.Reader) (*Document, error) {
	root, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	// html.Parse always synthesizes an <html> element; find it.
	var htmlElem *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if htmlElem != nil {
			return
		}
		if n.Type == html.ElementNode {
			htmlElem = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)
	if htmlElem == nil {
		return nil, ErrNilRoot
	}

	return Build(convertElement(htmlElem))
}

// convertElement maps an html.Node element to a BuildNode, folding direct
// text children into the element's own text.
func convertElement(n *html.Node) *BuildNode {
	bn := &BuildNode{
		Tag:   n.Data,
		Attrs: make([]Attr, 0, len(n.Attr)),
	}

	for _, a := range n.Attr {
		bn.Attrs = append(bn.Attrs, Attr{Name: a.Key, Value: a.Val})
	}

	if styleAttr := getAttr(n, "style"); styleAttr != "" {
		bn.Style = parseInlineStyle(styleAttr)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
			text.WriteByte(' ')
		case html.ElementNode:
			bn.Children = append(bn.Children, convertElement(c))
		}
	}
	bn.Text = text.String()

	return bn
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

// parseInlineStyle extracts the computed-style subset from a style
// attribute. Unparsable declarations are dropped rather than guessed;
// a nil color pointer later tells the contrast check to skip the node.
func parseInlineStyle(style string) *Style {
	s := &Style{}
	populated := false

	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)

		switch name {
		case "color":
			if rgb, ok := ParseColor(value); ok {
				s.Foreground = &rgb
				populated = true
			}
		case "background-color", "background":
			if rgb, ok := ParseColor(value); ok {
				s.Background = &rgb
				populated = true
			}
		case "font-size":
			if px, ok := parsePxSize(value); ok {
				s.FontSizePx = px
				populated = true
			}
		case "font-weight":
			if w, ok := parseFontWeight(value); ok {
				s.FontWeight = w
				populated = true
			}
		}
	}

	if !populated {
		return nil
	}
	return s
}

// namedColors covers the CSS keywords that appear in practice in inline
// styles. Anything else must arrive in hex or rgb() functional notation.
var namedColors = map[string]RGB{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"silver":  {192, 192, 192},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"maroon":  {128, 0, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"olive":   {128, 128, 0},
	"fuchsia": {255, 0, 255},
	"aqua":    {0, 255, 255},
	"lime":    {0, 255, 0},
}

// ParseColor parses a CSS color in #rgb, #rrggbb, rgb(r, g, b), or named
// keyword form. The second return value is false for anything it cannot
// resolve to a flat RGB color (gradients, var() references, rgba with
// transparency, and so on).
func ParseColor(value string) (RGB, bool) {
	value = strings.ToLower(strings.TrimSpace(value))

	if rgb, ok := namedColors[value]; ok {
		return rgb, true
	}

	if strings.HasPrefix(value, "#") {
		return parseHexColor(value[1:])
	}

	if inner, ok := strings.CutPrefix(value, "rgb("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return RGB{}, false
		}
		parts := strings.Split(inner, ",")
		if len(parts) != 3 {
			return RGB{}, false
		}
		var channels [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return RGB{}, false
			}
			channels[i] = uint8(n)
		}
		return RGB{R: channels[0], G: channels[1], B: channels[2]}, true
	}

	return RGB{}, false
}

// parseHexColor parses the 3- or 6-digit hex forms (without the "#").
func parseHexColor(hex string) (RGB, bool) {
	switch len(hex) {
	case 3:
		var expanded [6]byte
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded[:])
	case 6:
	default:
		return RGB{}, false
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
	}, true
}

// parsePxSize parses a font-size in CSS pixels. Other units (em, rem, pt)
// need cascade context we do not have, so they are dropped.
func parsePxSize(value string) (float64, bool) {
	num, ok := strings.CutSuffix(strings.TrimSpace(value), "px")
	if !ok {
		return 0, false
	}
	px, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || px <= 0 {
		return 0, false
	}
	return px, true
}

// parseFontWeight maps a font-weight value onto the normal/bold subset.
// Numeric weights of 600 and above count as bold, matching how browsers
// synthesize bold for those values.
func parseFontWeight(value string) (FontWeight, bool) {
	switch strings.ToLower(value) {
	case "bold", "bolder":
		return FontWeightBold, true
	case "normal", "lighter":
		return FontWeightNormal, true
	}
	if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= 1000 {
		if n >= 600 {
			return FontWeightBold, true
		}
		return FontWeightNormal, true
	}
	return FontWeightNormal, false
}
