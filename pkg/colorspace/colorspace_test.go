package colorspace_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseHex(t *testing.T) {
	Convey("Given hex color strings", t, func() {
		Convey("When parsing six-digit colors", func() {
			c, err := colorspace.ParseHex("#f6ede4")
			So(err, ShouldBeNil)
			So(c, ShouldResemble, colorspace.RGB{R: 0xf6, G: 0xed, B: 0xe4})

			Convey("Then case and whitespace should not matter", func() {
				c2, err := colorspace.ParseHex("  #F6EDE4 ")
				So(err, ShouldBeNil)
				So(c2, ShouldResemble, c)
			})

			Convey("And a missing hash prefix should be accepted", func() {
				c3, err := colorspace.ParseHex("f6ede4")
				So(err, ShouldBeNil)
				So(c3, ShouldResemble, c)
			})
		})

		Convey("When parsing three-digit shorthand", func() {
			c, err := colorspace.ParseHex("#fff")
			So(err, ShouldBeNil)
			So(c, ShouldResemble, colorspace.RGB{R: 255, G: 255, B: 255})

			c, err = colorspace.ParseHex("#a1b")
			So(err, ShouldBeNil)
			So(c, ShouldResemble, colorspace.RGB{R: 0xaa, G: 0x11, B: 0xbb})
		})

		Convey("When parsing invalid inputs", func() {
			for _, bad := range []string{"", "#", "#ff", "#fffffff", "#gggggg", "not a color"} {
				_, err := colorspace.ParseHex(bad)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("When round-tripping through Hex", func() {
			for r := 0; r < 256; r += 15 {
				for g := 0; g < 256; g += 15 {
					for b := 0; b < 256; b += 15 {
						c := colorspace.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
						back, err := colorspace.ParseHex(c.Hex())
						So(err, ShouldBeNil)
						So(back, ShouldResemble, c)
					}
				}
			}
		})
	})
}

func TestFromStdColor(t *testing.T) {
	Convey("Given standard library colors", t, func() {
		Convey("Then conversion should preserve the channels and drop alpha", func() {
			c := colorspace.FromStdColor(color.NRGBA{R: 200, G: 160, B: 130, A: 255})
			So(c, ShouldResemble, colorspace.RGB{R: 200, G: 160, B: 130})

			c = colorspace.FromStdColor(color.Gray{Y: 128})
			So(c, ShouldResemble, colorspace.RGB{R: 128, G: 128, B: 128})
		})
	})
}

func TestBrightnessMeasures(t *testing.T) {
	Convey("Given a color with distinct channels", t, func() {
		c := colorspace.RGB{R: 200, G: 160, B: 130}

		Convey("Then the channel measures should match their definitions", func() {
			So(c.Mean(), ShouldAlmostEqual, (200.0+160.0+130.0)/3.0, 1e-9)
			So(c.Luma(), ShouldAlmostEqual, 0.299*200+0.587*160+0.114*130, 1e-9)
			So(c.Spread(), ShouldEqual, 70)
			So(c.MaxChannel(), ShouldEqual, 200)
		})
	})
}

func TestToHSV(t *testing.T) {
	Convey("Given primary and achromatic colors", t, func() {
		Convey("Then pure red should map to hue 0", func() {
			hsv := colorspace.RGB{R: 255}.ToHSV()
			So(hsv.H, ShouldAlmostEqual, 0, 1e-9)
			So(hsv.S, ShouldAlmostEqual, 1, 1e-9)
			So(hsv.V, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("Then pure green should map to hue 120", func() {
			hsv := colorspace.RGB{G: 255}.ToHSV()
			So(hsv.H, ShouldAlmostEqual, 120, 1e-9)
		})

		Convey("Then pure blue should map to hue 240", func() {
			hsv := colorspace.RGB{B: 255}.ToHSV()
			So(hsv.H, ShouldAlmostEqual, 240, 1e-9)
		})

		Convey("Then gray should have zero saturation and hue", func() {
			hsv := colorspace.RGB{R: 128, G: 128, B: 128}.ToHSV()
			So(hsv.S, ShouldAlmostEqual, 0, 1e-9)
			So(hsv.H, ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("Then hue should always land in [0,360)", func() {
			for r := 0; r < 256; r += 51 {
				for g := 0; g < 256; g += 51 {
					for b := 0; b < 256; b += 51 {
						hsv := colorspace.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}.ToHSV()
						So(hsv.H, ShouldBeGreaterThanOrEqualTo, 0)
						So(hsv.H, ShouldBeLessThan, 360)
					}
				}
			}
		})
	})
}

func TestToLAB(t *testing.T) {
	Convey("Given reference colors", t, func() {
		Convey("Then white should map close to L*=100, a*=b*=0", func() {
			lab := colorspace.RGB{R: 255, G: 255, B: 255}.ToLAB()
			So(lab.L, ShouldAlmostEqual, 100, 0.01)
			So(lab.A, ShouldAlmostEqual, 0, 0.01)
			So(lab.B, ShouldAlmostEqual, 0, 0.01)
		})

		Convey("Then black should map to L*=0", func() {
			lab := colorspace.RGB{}.ToLAB()
			So(lab.L, ShouldAlmostEqual, 0, 0.01)
		})

		Convey("Then mid gray should sit between them with no chroma", func() {
			lab := colorspace.RGB{R: 119, G: 119, B: 119}.ToLAB()
			So(lab.L, ShouldBeBetween, 45, 55)
			So(math.Abs(lab.A), ShouldBeLessThan, 0.01)
			So(math.Abs(lab.B), ShouldBeLessThan, 0.01)
		})
	})
}

func TestITA(t *testing.T) {
	Convey("Given CIELAB coordinates", t, func() {
		Convey("Then a light warm color should have a positive angle", func() {
			So(colorspace.ITA(colorspace.LAB{L: 75, B: 15}), ShouldAlmostEqual,
				math.Atan2(25, 15)*180/math.Pi, 1e-9)
		})

		Convey("Then a dark warm color should have a negative angle", func() {
			So(colorspace.ITA(colorspace.LAB{L: 30, B: 20}), ShouldBeLessThan, 0)
		})

		Convey("When b* is degenerate", func() {
			Convey("Then the angle should resolve by the sign of L*-50", func() {
				So(colorspace.ITA(colorspace.LAB{L: 80, B: 0.05}), ShouldEqual, 90)
				So(colorspace.ITA(colorspace.LAB{L: 20, B: -0.08}), ShouldEqual, -90)
				So(colorspace.ITA(colorspace.LAB{L: 20, B: 0}), ShouldEqual, -90)
			})
		})
	})
}

func TestDistances(t *testing.T) {
	Convey("Given the distance measures", t, func() {
		black := colorspace.RGB{}
		white := colorspace.RGB{R: 255, G: 255, B: 255}

		Convey("Then the RGB distance of identical colors should be zero", func() {
			So(colorspace.DistanceRGB(white, white), ShouldEqual, 0)
		})

		Convey("Then black to white should span the cube diagonal", func() {
			So(colorspace.DistanceRGB(black, white), ShouldAlmostEqual, colorspace.MaxRGBDistance, 1e-9)
		})

		Convey("Then the LAB distance should be symmetric", func() {
			a := colorspace.RGB{R: 200, G: 160, B: 130}
			b := colorspace.RGB{R: 96, G: 65, B: 52}
			So(colorspace.DistanceLAB(a, b), ShouldAlmostEqual, colorspace.DistanceLAB(b, a), 1e-9)
			So(colorspace.DistanceLAB(a, a), ShouldEqual, 0)
		})

		Convey("Then hue distance should wrap around the circle", func() {
			// Hues 10 and 350 are 20 degrees apart, not 340.
			a := colorspace.RGB{R: 255, G: 42, B: 0}  // ~10 degrees
			b := colorspace.RGB{R: 255, G: 0, B: 42}  // ~350 degrees
			So(colorspace.HueDistance(a, b), ShouldBeLessThan, 25)
			So(colorspace.HueDistance(a, b), ShouldBeGreaterThan, 15)
			So(colorspace.HueDistance(a, a), ShouldEqual, 0)
		})
	})
}

func TestRelativeLuminance(t *testing.T) {
	Convey("Given the WCAG luminance", t, func() {
		Convey("Then it should be monotone from black to white", func() {
			So(colorspace.RGB{}.RelativeLuminance(), ShouldEqual, 0)
			So(colorspace.RGB{R: 255, G: 255, B: 255}.RelativeLuminance(), ShouldAlmostEqual, 1, 1e-9)

			prev := -1.0
			for v := 0; v < 256; v += 17 {
				lum := colorspace.RGB{R: uint8(v), G: uint8(v), B: uint8(v)}.RelativeLuminance()
				So(lum, ShouldBeGreaterThan, prev)
				prev = lum
			}
		})
	})
}
