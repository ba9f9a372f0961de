package tone_test

import (
	"testing"

	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/tone"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultScale(t *testing.T) {
	Convey("Given the built-in Monk scale", t, func() {
		scale := tone.DefaultScale()

		Convey("Then it should have ten categories and validate", func() {
			So(len(scale), ShouldEqual, 10)
			So(scale.Validate(), ShouldBeNil)
		})

		Convey("Then reference brightness should strictly decrease", func() {
			for i := 1; i < len(scale); i++ {
				So(scale[i].Reference.Mean(), ShouldBeLessThan, scale[i-1].Reference.Mean())
			}
		})

		Convey("Then ids should be zero padded", func() {
			So(scale[0].ID(), ShouldEqual, "Monk01")
			So(scale[9].ID(), ShouldEqual, "Monk10")
		})

		Convey("Then the lightest reference should be the documented one", func() {
			So(scale[0].Reference.Hex(), ShouldEqual, "#f6ede4")
			So(scale[9].Reference.Hex(), ShouldEqual, "#292420")
		})
	})
}

func TestScaleValidate(t *testing.T) {
	Convey("Given scales violating the invariants", t, func() {
		Convey("When the scale is empty", func() {
			So(tone.Scale{}.Validate(), ShouldWrap, tone.ErrEmptyScale)
		})

		Convey("When ordinals have a gap", func() {
			s := tone.Scale{
				{Ordinal: 1, Name: "a", Reference: colorspace.RGB{R: 240, G: 240, B: 240}},
				{Ordinal: 3, Name: "b", Reference: colorspace.RGB{R: 100, G: 100, B: 100}},
			}
			So(s.Validate(), ShouldWrap, tone.ErrOrdinalGap)
		})

		Convey("When ordinals do not start at 1", func() {
			s := tone.Scale{
				{Ordinal: 2, Name: "a", Reference: colorspace.RGB{R: 240, G: 240, B: 240}},
			}
			So(s.Validate(), ShouldWrap, tone.ErrOrdinalGap)
		})

		Convey("When a darker position is brighter than its predecessor", func() {
			s := tone.Scale{
				{Ordinal: 1, Name: "a", Reference: colorspace.RGB{R: 100, G: 100, B: 100}},
				{Ordinal: 2, Name: "b", Reference: colorspace.RGB{R: 240, G: 240, B: 240}},
			}
			So(s.Validate(), ShouldWrap, tone.ErrBrightnessInverts)
		})

		Convey("When two positions share the same brightness", func() {
			s := tone.Scale{
				{Ordinal: 1, Name: "a", Reference: colorspace.RGB{R: 100, G: 100, B: 100}},
				{Ordinal: 2, Name: "b", Reference: colorspace.RGB{R: 100, G: 100, B: 100}},
			}
			So(s.Validate(), ShouldWrap, tone.ErrBrightnessInverts)
		})
	})
}

func TestScaleLookups(t *testing.T) {
	Convey("Given the default scale", t, func() {
		scale := tone.DefaultScale()

		Convey("When looking up by ordinal", func() {
			cat, ok := scale.ByOrdinal(5)
			So(ok, ShouldBeTrue)
			So(cat.Ordinal, ShouldEqual, 5)

			Convey("Then out-of-range ordinals should report absence", func() {
				_, ok := scale.ByOrdinal(0)
				So(ok, ShouldBeFalse)
				_, ok = scale.ByOrdinal(11)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When checking scale extremes", func() {
			So(scale.Lightest(1, 2), ShouldBeTrue)
			So(scale.Lightest(2, 2), ShouldBeTrue)
			So(scale.Lightest(3, 2), ShouldBeFalse)

			So(scale.Darkest(10, 3), ShouldBeTrue)
			So(scale.Darkest(8, 3), ShouldBeTrue)
			So(scale.Darkest(7, 3), ShouldBeFalse)
		})
	})
}
