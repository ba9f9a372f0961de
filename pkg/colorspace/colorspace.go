// Package colorspace provides the color math shared by the analysis and
// ranking pipelines: sRGB/hex codecs, CIELAB and HSV conversions, the
// Individual Typology Angle, and the distance measures used for tone and
// palette matching.
package colorspace

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// FromStdColor converts a standard library color to RGB, discarding alpha.
func FromStdColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// ParseHex parses a hex color string like "#fff", "f6ede4" or "#F6EDE4".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	default:
		return RGB{}, fmt.Errorf("invalid hex color %q: must be 3 or 6 hex digits", s)
	}
	return RGB{R: r, G: g, B: b}, nil
}

// Hex renders the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Mean returns the plain channel mean in [0,255].
func (c RGB) Mean() float64 {
	return (float64(c.R) + float64(c.G) + float64(c.B)) / 3.0
}

// Luma returns the Rec.601 luma-weighted brightness in [0,255].
func (c RGB) Luma() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Spread returns max(channel) - min(channel). Low spread at high brightness
// is characteristic of very light skin.
func (c RGB) Spread() float64 {
	mx := math.Max(float64(c.R), math.Max(float64(c.G), float64(c.B)))
	mn := math.Min(float64(c.R), math.Min(float64(c.G), float64(c.B)))
	return mx - mn
}

// MaxChannel returns the largest channel value in [0,255].
func (c RGB) MaxChannel() float64 {
	return math.Max(float64(c.R), math.Max(float64(c.G), float64(c.B)))
}

// HSV holds a hue in degrees [0,360), saturation and value in [0,1].
type HSV struct {
	H, S, V float64
}

// ToHSV converts the color to HSV.
func (c RGB) ToHSV() HSV {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	mx := math.Max(r, math.Max(g, b))
	mn := math.Min(r, math.Min(g, b))
	d := mx - mn

	var h float64
	switch {
	case d == 0:
		h = 0
	case mx == r:
		h = 60 * math.Mod((g-b)/d, 6)
	case mx == g:
		h = 60 * ((b-r)/d + 2)
	default:
		h = 60 * ((r-g)/d + 4)
	}
	if h < 0 {
		h += 360
	}

	s := 0.0
	if mx > 0 {
		s = d / mx
	}
	return HSV{H: h, S: s, V: mx}
}

// LAB is a color in the CIELAB space (D65 illuminant).
type LAB struct {
	L, A, B float64
}

// ToLAB converts the color to CIELAB.
func (c RGB) ToLAB() LAB {
	rLin := srgbToLinear(float64(c.R) / 255.0)
	gLin := srgbToLinear(float64(c.G) / 255.0)
	bLin := srgbToLinear(float64(c.B) / 255.0)

	// Linear sRGB to XYZ (D65)
	x := 0.4124564*rLin + 0.3575761*gLin + 0.1804375*bLin
	y := 0.2126729*rLin + 0.7151522*gLin + 0.0721750*bLin
	z := 0.0193339*rLin + 0.1191920*gLin + 0.9503041*bLin

	const xn, yn, zn = 0.95047, 1.00000, 1.08883

	fx := labF(x / xn)
	fy := labF(y / yn)
	fz := labF(z / zn)

	return LAB{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3.0*delta*delta) + 4.0/29.0
}

// RelativeLuminance returns the WCAG relative luminance in [0,1].
func (c RGB) RelativeLuminance() float64 {
	rLin := srgbToLinear(float64(c.R) / 255.0)
	gLin := srgbToLinear(float64(c.G) / 255.0)
	bLin := srgbToLinear(float64(c.B) / 255.0)
	return 0.2126*rLin + 0.7152*gLin + 0.0722*bLin
}

// ITA returns the Individual Typology Angle in degrees for a CIELAB color:
// atan2(L*-50, b*). A b* magnitude at or below 0.1 is treated as degenerate
// and resolves to +/-90 by the sign of L*-50.
func ITA(lab LAB) float64 {
	if math.Abs(lab.B) <= 0.1 {
		if lab.L > 50 {
			return 90
		}
		return -90
	}
	return math.Atan2(lab.L-50, lab.B) * 180 / math.Pi
}

// MaxRGBDistance is the diagonal of the RGB cube, used to normalize
// RGB distances to [0,1].
var MaxRGBDistance = math.Sqrt(3 * 255 * 255)

// DistanceRGB computes the Euclidean distance between two colors in RGB space.
func DistanceRGB(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// DistanceLAB computes the Euclidean distance between two colors in CIELAB.
func DistanceLAB(a, b RGB) float64 {
	la, lb := a.ToLAB(), b.ToLAB()
	dl := la.L - lb.L
	da := la.A - lb.A
	db := la.B - lb.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// HueDistance computes the circular distance between the hues of two colors
// in degrees, in [0,180].
func HueDistance(a, b RGB) float64 {
	d := math.Abs(a.ToHSV().H - b.ToHSV().H)
	if d > 180 {
		d = 360 - d
	}
	return d
}
