package sampler_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/sampler"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
	. "github.com/smartystreets/goconvey/convey"
)

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// meshLandmarks builds a full face mesh where the cheek and nose regions
// trace convex polygons, so the landmark strategy engages. Regions are
// placed in a fixed order because some midline indices are shared.
func meshLandmarks() []image.Point {
	pts := make([]image.Point, 468)
	layout := []struct {
		center  image.Point
		indices []int
	}{
		{image.Pt(100, 40), []int{9, 10, 151, 337, 299, 333, 298, 301}},
		{image.Pt(55, 110), []int{116, 117, 118, 119, 120, 121, 126, 142}},
		{image.Pt(145, 110), []int{345, 346, 347, 348, 349, 350, 355, 371}},
		{image.Pt(100, 100), []int{6, 51, 48, 115, 131, 134, 102, 49, 220, 305, 331, 294}},
		{image.Pt(100, 165), []int{18, 175, 199, 200, 9, 10, 151, 175}},
	}
	const radius = 30.0
	for _, region := range layout {
		for i, idx := range region.indices {
			angle := 2 * math.Pi * float64(i) / float64(len(region.indices))
			pts[idx] = image.Pt(
				region.center.X+int(radius*math.Cos(angle)),
				region.center.Y+int(radius*math.Sin(angle)),
			)
		}
	}
	return pts
}

func TestSampleGeometric(t *testing.T) {
	Convey("Given a uniform skin-colored face image and no landmarks", t, func() {
		skin := color.NRGBA{R: 200, G: 160, B: 130, A: 255}
		img := uniformImage(200, 200, skin)
		s := sampler.New(sampler.WithWhiteBalance(false))

		Convey("When sampling", func() {
			samples := s.Sample(img, nil)

			Convey("Then every geometric region should yield the fill color", func() {
				So(len(samples), ShouldEqual, 6)
				names := make(map[string]bool, len(samples))
				for _, sm := range samples {
					names[sm.Region] = true
					So(sm.Color, ShouldResemble, colorspace.RGB{R: 200, G: 160, B: 130})
					So(sm.PixelCount, ShouldBeGreaterThan, 0)
				}
				So(names["forehead"], ShouldBeTrue)
				So(names["upper_neck"], ShouldBeTrue)
			})
		})
	})
}

func TestSampleLandmarks(t *testing.T) {
	Convey("Given a uniform image with a full face mesh", t, func() {
		skin := color.NRGBA{R: 190, G: 150, B: 120, A: 255}
		img := uniformImage(200, 200, skin)
		s := sampler.New(sampler.WithWhiteBalance(false))

		Convey("When sampling with the mesh", func() {
			samples := s.Sample(img, meshLandmarks())

			Convey("Then only anatomical mesh regions should appear", func() {
				meshNames := map[string]bool{
					"forehead": true, "left_cheek": true, "right_cheek": true,
					"nose_bridge": true, "chin": true,
				}
				So(len(samples), ShouldBeGreaterThanOrEqualTo, 3)
				So(len(samples), ShouldBeLessThanOrEqualTo, 5)
				for _, sm := range samples {
					So(meshNames[sm.Region], ShouldBeTrue)
					So(sm.Color, ShouldResemble, colorspace.RGB{R: 190, G: 150, B: 120})
				}
			})
		})

		Convey("When the landmark set is partial", func() {
			samples := s.Sample(img, meshLandmarks()[:100])

			Convey("Then sampling should fall back to geometric regions", func() {
				So(len(samples), ShouldEqual, 6)
			})
		})
	})
}

func TestSampleDegenerateInputs(t *testing.T) {
	Convey("Given degenerate inputs", t, func() {
		s := sampler.New(sampler.WithWhiteBalance(false))

		Convey("When the image is nil", func() {
			So(s.Sample(nil, nil), ShouldBeNil)
		})

		Convey("When the image is too small for any region", func() {
			img := uniformImage(8, 8, color.NRGBA{R: 200, G: 160, B: 130, A: 255})
			So(len(s.Sample(img, nil)), ShouldEqual, 0)
		})
	})
}

func TestSampleDownscaling(t *testing.T) {
	Convey("Given a face crop larger than the working raster", t, func() {
		skin := color.NRGBA{R: 200, G: 160, B: 130, A: 255}
		img := uniformImage(1024, 768, skin)
		s := sampler.New(sampler.WithWhiteBalance(false))

		Convey("When sampling", func() {
			samples := s.Sample(img, nil)

			Convey("Then downsampling should preserve the uniform color", func() {
				So(len(samples), ShouldEqual, 6)
				for _, sm := range samples {
					So(float64(sm.Color.R), ShouldAlmostEqual, 200, 2)
					So(float64(sm.Color.G), ShouldAlmostEqual, 160, 2)
					So(float64(sm.Color.B), ShouldAlmostEqual, 130, 2)
				}
			})
		})
	})
}

func TestSampleWhiteBalance(t *testing.T) {
	Convey("Given a uniformly warm image with white balance on", t, func() {
		img := uniformImage(200, 200, color.NRGBA{R: 200, G: 160, B: 130, A: 255})
		s := sampler.New(sampler.WithWhiteBalance(true))

		Convey("When sampling", func() {
			samples := s.Sample(img, nil)

			Convey("Then gray-world correction should pull channels toward gray", func() {
				So(len(samples), ShouldEqual, 6)
				for _, sm := range samples {
					// 128/200 clamps to the 0.7 factor floor; green and blue
					// correct exactly to the target gray.
					So(sm.Color, ShouldResemble, colorspace.RGB{R: 140, G: 128, B: 128})
				}
			})
		})
	})
}
