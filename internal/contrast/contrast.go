// Package contrast implements the WCAG relative luminance and contrast
// ratio computations.
//
// Every function here is a pure function of its inputs. That property is
// what allows the contrast check to run concurrently with the other checks
// and is covered directly by tests (symmetry, identity, and the exact 21:1
// black-on-white maximum).
package contrast

import (
	"math"

	"github.com/a11yscan/a11yscan/internal/dom"
)

// WCAG AA thresholds and the large-text boundaries.
const (
	// MinRatioNormal is the minimum contrast ratio for normal text.
	MinRatioNormal = 4.5

	// MinRatioLarge is the minimum contrast ratio for large text.
	MinRatioLarge = 3.0

	// DefaultLargeTextPx is the font size at which regular-weight text
	// counts as large (18pt at 96dpi).
	DefaultLargeTextPx = 24.0

	// boldLargeTextPx is the font size at which bold text counts as large
	// (14pt at 96dpi).
	boldLargeTextPx = 18.66
)

// linearize applies the sRGB gamma-decoding curve to one 8-bit channel,
// returning the linear-light value in [0,1].
func linearize(channel uint8) float64 {
	c := float64(channel) / 255.0
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance computes the WCAG relative luminance of a color:
// L = 0.2126 R + 0.7152 G + 0.0722 B over the linearized channels.
func Luminance(c dom.RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

// Ratio computes the contrast ratio between two colors:
// (L_lighter + 0.05) / (L_darker + 0.05). The result is at least 1.0 by
// construction and symmetric in its arguments.
func Ratio(a, b dom.RGB) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// IsLargeText reports whether text qualifies as "large" for the reduced
// contrast threshold: at least largeTextPx at any weight, or at least
// 18.66px (14pt) when bold. largeTextPx is configurable; pass
// DefaultLargeTextPx for the WCAG default.
func IsLargeText(fontSizePx float64, weight dom.FontWeight, largeTextPx float64) bool {
	if largeTextPx <= 0 {
		largeTextPx = DefaultLargeTextPx
	}
	if fontSizePx >= largeTextPx {
		return true
	}
	return weight == dom.FontWeightBold && fontSizePx >= boldLargeTextPx
}

// Classify reports whether a contrast ratio passes the WCAG AA threshold
// for the given text size class.
func Classify(ratio float64, isLargeText bool) bool {
	if isLargeText {
		return ratio >= MinRatioLarge
	}
	return ratio >= MinRatioNormal
}
