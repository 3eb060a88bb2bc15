package contrast

import (
	"math"
	"testing"

	"github.com/a11yscan/a11yscan/internal/dom"
)

var (
	black = dom.RGB{R: 0, G: 0, B: 0}
	white = dom.RGB{R: 255, G: 255, B: 255}
)

// TestRatioBlackWhite tests the exact 21:1 maximum for black on white.
func TestRatioBlackWhite(t *testing.T) {
	t.Parallel()

	got := Ratio(black, white)
	if math.Abs(got-21.0) > 1e-9 {
		t.Errorf("Ratio(black, white) = %v, expected 21.0", got)
	}
}

// TestRatioSymmetry tests that the ratio is independent of argument order.
func TestRatioSymmetry(t *testing.T) {
	t.Parallel()

	pairs := []struct{ a, b dom.RGB }{
		{black, white},
		{dom.RGB{R: 0x33, G: 0x66, B: 0x99}, dom.RGB{R: 0xee, G: 0xee, B: 0xee}},
		{dom.RGB{R: 255, G: 0, B: 0}, dom.RGB{R: 0, G: 128, B: 0}},
		{dom.RGB{R: 17, G: 34, B: 51}, dom.RGB{R: 51, G: 34, B: 17}},
	}

	for _, p := range pairs {
		if got, rev := Ratio(p.a, p.b), Ratio(p.b, p.a); got != rev {
			t.Errorf("Ratio(%v, %v) = %v but reversed = %v", p.a, p.b, got, rev)
		}
	}
}

// TestRatioIdentity tests that a color against itself yields exactly 1.0.
func TestRatioIdentity(t *testing.T) {
	t.Parallel()

	for _, c := range []dom.RGB{black, white, {R: 12, G: 200, B: 99}} {
		if got := Ratio(c, c); got != 1.0 {
			t.Errorf("Ratio(%v, %v) = %v, expected 1.0", c, c, got)
		}
	}
}

// TestRatioAtLeastOne tests the ratio lower bound across a channel sweep.
func TestRatioAtLeastOne(t *testing.T) {
	t.Parallel()

	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			a := dom.RGB{R: uint8(r), G: uint8(g), B: 128}
			if got := Ratio(a, white); got < 1.0 {
				t.Errorf("Ratio(%v, white) = %v, below 1.0", a, got)
			}
		}
	}
}

// TestClassifyThresholds tests the exact pass/fail boundaries.
func TestClassifyThresholds(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		ratio    float64
		large    bool
		expected bool
	}{
		{"normal at threshold", 4.5, false, true},
		{"normal just below", 4.49, false, false},
		{"large at threshold", 3.0, true, true},
		{"large just below", 2.99, true, false},
		{"normal ratio passes large", 3.5, true, true},
		{"large ratio fails normal", 3.5, false, false},
		{"maximum", 21.0, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tc.ratio, tc.large); got != tc.expected {
				t.Errorf("Classify(%v, %v) = %v, expected %v",
					tc.ratio, tc.large, got, tc.expected)
			}
		})
	}
}

// TestIsLargeText tests the size and weight boundaries for large text.
func TestIsLargeText(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		sizePx   float64
		weight   dom.FontWeight
		largePx  float64
		expected bool
	}{
		{"24px normal", 24, dom.FontWeightNormal, DefaultLargeTextPx, true},
		{"23px normal", 23, dom.FontWeightNormal, DefaultLargeTextPx, false},
		{"18.66px bold", 18.66, dom.FontWeightBold, DefaultLargeTextPx, true},
		{"18.66px normal", 18.66, dom.FontWeightNormal, DefaultLargeTextPx, false},
		{"18px bold", 18, dom.FontWeightBold, DefaultLargeTextPx, false},
		{"custom threshold lowers the bar", 20, dom.FontWeightNormal, 20, true},
		{"zero threshold falls back to default", 24, dom.FontWeightNormal, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsLargeText(tc.sizePx, tc.weight, tc.largePx); got != tc.expected {
				t.Errorf("IsLargeText(%v, %v, %v) = %v, expected %v",
					tc.sizePx, tc.weight, tc.largePx, got, tc.expected)
			}
		})
	}
}

// TestLuminanceEndpoints tests the luminance range endpoints.
func TestLuminanceEndpoints(t *testing.T) {
	t.Parallel()

	if got := Luminance(black); got != 0 {
		t.Errorf("Luminance(black) = %v, expected 0", got)
	}
	if got := Luminance(white); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Luminance(white) = %v, expected 1.0", got)
	}
}
