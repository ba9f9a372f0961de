package classify_test

import (
	"testing"

	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/classify"
	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/tone"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyLightSkin(t *testing.T) {
	Convey("Given a classifier on the default scale", t, func() {
		c := classify.New(tone.DefaultScale())

		Convey("When classifying the lightest reference color", func() {
			res := c.Classify(colorspace.RGB{R: 246, G: 237, B: 228})

			Convey("Then the light shortcut should fire with high confidence", func() {
				So(res.Category.Ordinal, ShouldEqual, 1)
				So(res.Confidence, ShouldBeGreaterThanOrEqualTo, 0.85)
				So(res.Method, ShouldEqual, classify.MethodRule)
				So(res.Reason, ShouldEqual, classify.ReasonLightShortcut)
			})
		})

		Convey("When classifying a near-white ultra-light color", func() {
			res := c.Classify(colorspace.RGB{R: 250, G: 245, B: 240})

			Convey("Then it should land on the lightest category", func() {
				So(res.Category.Ordinal, ShouldEqual, 1)
				So(res.Confidence, ShouldBeGreaterThanOrEqualTo, 0.9)
				So(res.Method, ShouldEqual, classify.MethodRule)
			})
		})

		Convey("When a light rule result is confident", func() {
			res := c.Classify(colorspace.RGB{R: 240, G: 225, B: 210})

			Convey("Then it should override the distance match", func() {
				So(res.Method, ShouldEqual, classify.MethodRule)
				So(res.Category.Ordinal, ShouldBeLessThanOrEqualTo, 3)
				So(res.Confidence, ShouldBeGreaterThan, 0.75)
			})
		})
	})
}

func TestClassifyDarkSkin(t *testing.T) {
	Convey("Given a classifier on the default scale", t, func() {
		c := classify.New(tone.DefaultScale())

		Convey("When classifying a deep skin color", func() {
			res := c.Classify(colorspace.RGB{R: 60, G: 40, B: 30})

			Convey("Then it should land among the darkest categories", func() {
				So(res.Category.Ordinal, ShouldBeGreaterThanOrEqualTo, 8)
				So(res.Method, ShouldEqual, classify.MethodDistance)
				So(res.Confidence, ShouldBeGreaterThanOrEqualTo, 0.35)
				So(res.Confidence, ShouldBeLessThanOrEqualTo, 1)
			})
		})

		Convey("When classifying a mid-deep reference exactly", func() {
			res := c.Classify(colorspace.RGB{R: 0x82, G: 0x5c, B: 0x43})

			Convey("Then the distance match should be exact", func() {
				So(res.Category.Ordinal, ShouldEqual, 7)
				So(res.Method, ShouldEqual, classify.MethodDistance)
				So(res.MatchDistance, ShouldAlmostEqual, 0, 1e-9)
				So(res.Confidence, ShouldAlmostEqual, 1, 1e-9)
			})
		})
	})
}

func TestClassifyConfidenceBounds(t *testing.T) {
	Convey("Given a classifier and a sweep of arbitrary colors", t, func() {
		c := classify.New(tone.DefaultScale())

		Convey("Then every result should be a valid category with bounded confidence", func() {
			for r := 0; r < 256; r += 51 {
				for g := 0; g < 256; g += 51 {
					for b := 0; b < 256; b += 51 {
						res := c.Classify(colorspace.RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
						So(res.Category.Ordinal, ShouldBeBetweenOrEqual, 1, 10)
						So(res.Confidence, ShouldBeBetweenOrEqual, 0, 1)
						So(res.MatchDistance, ShouldBeGreaterThanOrEqualTo, 0)
					}
				}
			}
		})
	})
}

func TestDistanceMatch(t *testing.T) {
	Convey("Given the distance matcher on the default scale", t, func() {
		scale := tone.DefaultScale()
		c := classify.New(scale)

		Convey("When matching each reference color against the scale", func() {
			Convey("Then every reference should match its own category at distance zero", func() {
				for _, cat := range scale {
					got, d := c.DistanceMatch(cat.Reference)
					So(got.Ordinal, ShouldEqual, cat.Ordinal)
					So(d, ShouldAlmostEqual, 0, 1e-9)
				}
			})
		})

		Convey("When matching colors between adjacent references", func() {
			Convey("Then darker inputs should not match lighter categories than brighter inputs", func() {
				light, _ := c.DistanceMatch(colorspace.RGB{R: 230, G: 215, B: 195})
				dark, _ := c.DistanceMatch(colorspace.RGB{R: 70, G: 50, B: 40})
				So(light.Ordinal, ShouldBeLessThan, dark.Ordinal)
			})
		})
	})
}

func TestClassifyShortScale(t *testing.T) {
	Convey("Given a scale shorter than the rule ordinals", t, func() {
		short := tone.Scale{
			{Ordinal: 1, Name: "light", Reference: colorspace.RGB{R: 240, G: 230, B: 220}},
			{Ordinal: 2, Name: "medium", Reference: colorspace.RGB{R: 160, G: 120, B: 90}},
			{Ordinal: 3, Name: "deep", Reference: colorspace.RGB{R: 60, G: 40, B: 30}},
		}
		So(short.Validate(), ShouldBeNil)
		c := classify.New(short)

		Convey("When classifying a color the rules would put past the end", func() {
			res := c.Classify(colorspace.RGB{R: 40, G: 30, B: 25})

			Convey("Then the ordinal should clamp into the scale", func() {
				So(res.Category.Ordinal, ShouldBeBetweenOrEqual, 1, 3)
			})
		})
	})
}
