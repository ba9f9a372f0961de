// Package sampler extracts representative skin colors from named sub-regions
// of a face-bounded image. Region selection is pluggable: landmark-derived
// polygons when a face mesh is available, fixed proportional rectangles
// otherwise. Sampling never fails; a region that yields no usable pixels is
// simply omitted from the result.
package sampler

import (
	"image"
	"math"
	"sort"

	"golang.org/x/image/draw"

	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
)

// Sample is the average skin color observed in one face sub-region.
type Sample struct {
	Region     string
	Color      colorspace.RGB
	PixelCount int
}

// Pixel-count thresholds for the staged filter relaxation.
const (
	minRegionPixels    = 50 // region too small to bother sampling
	minFilteredPixels  = 10 // accept the narrow filter result
	minRelaxedPixels   = 5  // accept the wide filter result
	brightestFallbackN = 50 // pixels averaged in the last-resort branch

	// Brightness sanity band: rejects shadows and specular highlights.
	brightnessFloor = 50.0
	brightnessCeil  = 240.0

	// maxSide bounds per-request work; larger face crops are downsampled.
	maxSide = 256
)

// Sampler extracts regional skin colors from a face image.
type Sampler struct {
	extractor    RegionExtractor
	fallback     RegionExtractor
	whiteBalance bool
}

// Option applies a configuration option to the Sampler.
type Option func(*Sampler)

// WithRegionExtractor overrides the primary region-extraction strategy.
func WithRegionExtractor(e RegionExtractor) Option {
	return func(s *Sampler) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithWhiteBalance enables gray-world white-balance correction of the face
// pixels before filtering.
func WithWhiteBalance(enabled bool) Option {
	return func(s *Sampler) {
		s.whiteBalance = enabled
	}
}

// New creates a Sampler. By default it uses landmark polygons when landmarks
// are supplied and proportional rectangles otherwise.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		extractor: LandmarkRegions{},
		fallback:  GeometricRegions{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample extracts up to one averaged skin color per sub-region. Landmarks are
// optional; when absent or insufficient, the geometric fallback strategy is
// used. The result may be empty and is never an error.
func (s *Sampler) Sample(img image.Image, landmarks []image.Point) []Sample {
	if img == nil {
		return nil
	}
	px, w, h := rasterize(img)
	if w == 0 || h == 0 {
		return nil
	}
	landmarks = scaleLandmarks(landmarks, img.Bounds(), w, h)

	if s.whiteBalance {
		grayWorldCorrect(px)
	}

	regions := s.extractor.Regions(w, h, landmarks)
	if len(regions) == 0 {
		regions = s.fallback.Regions(w, h, landmarks)
	}

	out := make([]Sample, 0, len(regions))
	for _, r := range regions {
		pixels := collect(px, w, h, r)
		if len(pixels) < minRegionPixels {
			continue
		}
		avg, n, ok := filterAndAverage(pixels)
		if !ok {
			continue
		}
		out = append(out, Sample{Region: r.Name, Color: avg, PixelCount: n})
	}
	return out
}

// pixel is a working-precision RGB triple.
type pixel struct {
	r, g, b float64
}

func (p pixel) mean() float64 { return (p.r + p.g + p.b) / 3 }

func (p pixel) rgb() colorspace.RGB {
	return colorspace.RGB{
		R: uint8(math.Round(clamp255(p.r))),
		G: uint8(math.Round(clamp255(p.g))),
		B: uint8(math.Round(clamp255(p.b))),
	}
}

func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

// rasterize converts the image to a flat pixel buffer, downsampling large
// crops so per-request work stays bounded.
func rasterize(img image.Image) ([]pixel, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	if w > maxSide || h > maxSide {
		scale := float64(maxSide) / float64(max(w, h))
		nw := int(math.Round(float64(w) * scale))
		nh := int(math.Round(float64(h) * scale))
		dst := image.NewRGBA(image.Rect(0, 0, max(nw, 1), max(nh, 1)))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
		b = dst.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	px := make([]pixel, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			px = append(px, pixel{
				r: float64(r >> 8),
				g: float64(g >> 8),
				b: float64(bb >> 8),
			})
		}
	}
	return px, w, h
}

// scaleLandmarks maps landmark coordinates from the source bounds onto the
// (possibly downsampled) working raster.
func scaleLandmarks(pts []image.Point, src image.Rectangle, w, h int) []image.Point {
	if len(pts) == 0 || src.Dx() == 0 || src.Dy() == 0 {
		return pts
	}
	sx := float64(w) / float64(src.Dx())
	sy := float64(h) / float64(src.Dy())
	if sx == 1 && sy == 1 && src.Min == image.Pt(0, 0) {
		return pts
	}
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		out[i] = image.Pt(
			int(math.Round(float64(p.X-src.Min.X)*sx)),
			int(math.Round(float64(p.Y-src.Min.Y)*sy)),
		)
	}
	return out
}

// collect gathers the raster pixels covered by the region.
func collect(px []pixel, w, h int, r Region) []pixel {
	var out []pixel
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Contains(x, y) {
				out = append(out, px[y*w+x])
			}
		}
	}
	return out
}

// filterAndAverage applies the staged skin filter to the region pixels:
// narrow two-space mask first, then the relaxed wide mask, then an average
// of the brightest pixels as the last resort.
func filterAndAverage(pixels []pixel) (colorspace.RGB, int, bool) {
	narrow := applyMask(pixels, false)
	if len(narrow) >= minFilteredPixels {
		return average(narrow), len(narrow), true
	}
	wide := applyMask(pixels, true)
	if len(wide) >= minRelaxedPixels {
		return average(wide), len(wide), true
	}
	bright := brightest(pixels, brightestFallbackN)
	if len(bright) == 0 {
		return colorspace.RGB{}, 0, false
	}
	return average(bright), len(bright), true
}

// applyMask keeps pixels passing (YCbCr range OR HSV range) AND the
// brightness sanity band. The two independent color-space tests are
// OR-combined for recall; a single space misses too much real skin.
func applyMask(pixels []pixel, wide bool) []pixel {
	var out []pixel
	for _, p := range pixels {
		m := p.mean()
		if m <= brightnessFloor || m >= brightnessCeil {
			continue
		}
		if inYCbCrSkinRange(p, wide) || inHSVSkinRange(p) {
			out = append(out, p)
		}
	}
	return out
}

// YCbCr chroma ranges for skin. The narrow range is the reliable default;
// the wide range is the relaxation used when the narrow filter starves.
func inYCbCrSkinRange(p pixel, wide bool) bool {
	_, cb, cr := rgbToYCbCr(p)
	if wide {
		return cr >= 125 && cr <= 180 && cb >= 70 && cb <= 135
	}
	return cr >= 133 && cr <= 173 && cb >= 77 && cb <= 127
}

func rgbToYCbCr(p pixel) (y, cb, cr float64) {
	y = 0.299*p.r + 0.587*p.g + 0.114*p.b
	cb = 128 - 0.168736*p.r - 0.331264*p.g + 0.5*p.b
	cr = 128 + 0.5*p.r - 0.418688*p.g - 0.081312*p.b
	return y, cb, cr
}

func inHSVSkinRange(p pixel) bool {
	hsv := p.rgb().ToHSV()
	return hsv.H <= 40 && hsv.S*255 >= 20 && hsv.V*255 >= 70
}

// brightest returns up to n of the brightest pixels.
func brightest(pixels []pixel, n int) []pixel {
	if len(pixels) == 0 {
		return nil
	}
	sorted := make([]pixel, len(pixels))
	copy(sorted, pixels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].mean() > sorted[j].mean() })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func average(pixels []pixel) colorspace.RGB {
	var sum pixel
	for _, p := range pixels {
		sum.r += p.r
		sum.g += p.g
		sum.b += p.b
	}
	n := float64(len(pixels))
	return pixel{r: sum.r / n, g: sum.g / n, b: sum.b / n}.rgb()
}

// grayWorldCorrect applies a gray-world white balance in place. Channel
// correction factors are clamped to [0.7,1.5] to avoid over-correction of
// already-balanced skin.
func grayWorldCorrect(px []pixel) {
	if len(px) == 0 {
		return
	}
	var mr, mg, mb float64
	for _, p := range px {
		mr += p.r
		mg += p.g
		mb += p.b
	}
	n := float64(len(px))
	mr, mg, mb = mr/n, mg/n, mb/n

	const targetGray = 128.0
	fr := clampFactor(targetGray / nonZero(mr))
	fg := clampFactor(targetGray / nonZero(mg))
	fb := clampFactor(targetGray / nonZero(mb))

	for i := range px {
		px[i].r = clamp255(px[i].r * fr)
		px[i].g = clamp255(px[i].g * fg)
		px[i].b = clamp255(px[i].b * fb)
	}
}

func clampFactor(f float64) float64 {
	return math.Max(0.7, math.Min(1.5, f))
}

func nonZero(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
