// Package confidence combines independent quality signals into one overall
// confidence for a classification. The scorer never fails: any degenerate
// input resolves to a documented neutral default.
package confidence

import (
	"image"
	"math"

	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
)

// Factor weights. They sum to 1; the baseline keeps a floor under results
// whose other signals are all weak.
const (
	weightClustering  = 0.25
	weightConsistency = 0.20
	weightSharpness   = 0.20
	weightDistance    = 0.15
	weightPlausible   = 0.10
	weightBaseline    = 0.10

	// Normalization constants for the individual signals.
	consistencyScale = 30.0  // per-region channel spread considered maximal
	sharpnessScale   = 500.0 // Laplacian variance treated as fully sharp
	distanceScale    = 150.0 // combined match distance treated as no match

	neutralScore = 0.5
)

// Input carries the signals feeding the overall confidence.
type Input struct {
	// ClusterConfidence comes from the robust color estimator.
	ClusterConfidence float64
	// RegionSpreads holds the per-region channel standard deviation of each
	// sampled color; agreement across regions raises confidence.
	RegionSpreads []float64
	// SharpnessVariance is the raw discrete-Laplacian variance of the source
	// region. Negative means unavailable.
	SharpnessVariance float64
	// MatchDistance is the classifier's combined distance to the chosen
	// category.
	MatchDistance float64
	// Color is the final estimated color, checked for skin plausibility.
	Color colorspace.RGB
}

// Scorer computes overall confidences. Stateless and safe for concurrent
// use.
type Scorer struct{}

// New creates a Scorer.
func New() *Scorer {
	return &Scorer{}
}

// Score combines the input signals into a confidence in [0,1]. Non-finite
// signals resolve to the neutral default instead of propagating.
func (s *Scorer) Score(in Input) float64 {
	if !finite(in.ClusterConfidence) || !finite(in.MatchDistance) || !finite(in.SharpnessVariance) {
		return neutralScore
	}
	for _, sp := range in.RegionSpreads {
		if !finite(sp) {
			return neutralScore
		}
	}

	total := clamp01(in.ClusterConfidence) * weightClustering
	total += consistencyScore(in.RegionSpreads) * weightConsistency
	total += sharpnessScore(in.SharpnessVariance) * weightSharpness
	total += distanceScore(in.MatchDistance) * weightDistance
	total += plausibilityScore(in.Color) * weightPlausible
	total += weightBaseline

	return clamp01(total)
}

// consistencyScore rewards regions that agree. A single region earns half
// credit rather than a perfect score it did not demonstrate.
func consistencyScore(spreads []float64) float64 {
	if len(spreads) < 2 {
		return 0.5
	}
	var sum float64
	for _, sp := range spreads {
		sum += sp
	}
	mean := sum / float64(len(spreads))
	return clamp01(1 - mean/consistencyScale)
}

func sharpnessScore(variance float64) float64 {
	if variance < 0 {
		return neutralScore
	}
	return math.Min(1, variance/sharpnessScale)
}

func distanceScore(d float64) float64 {
	return clamp01(1 - d/distanceScale)
}

// plausibilityScore checks how skin-like the final color is: warm hue,
// moderate saturation, sane brightness, R >= G >= ~B ordering. Each check
// contributes a quarter.
func plausibilityScore(c colorspace.RGB) float64 {
	hsv := c.ToHSV()
	checks := 0
	if hsv.H <= 30 || hsv.H >= 330 {
		checks++
	}
	if sat := hsv.S * 255; sat >= 20 && sat <= 200 {
		checks++
	}
	if v := hsv.V * 255; v >= 50 && v <= 240 {
		checks++
	}
	if float64(c.R) >= float64(c.G) && float64(c.G) >= 0.8*float64(c.B) {
		checks++
	}
	return float64(checks) / 4.0
}

// ChannelSpread returns the standard deviation across the three channels of
// a color, the per-region signal feeding consistencyScore.
func ChannelSpread(c colorspace.RGB) float64 {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	mean := (r + g + b) / 3
	return math.Sqrt(((r-mean)*(r-mean) + (g-mean)*(g-mean) + (b-mean)*(b-mean)) / 3)
}

// Sharpness computes the raw variance of a 4-neighbor discrete Laplacian
// over the grayscale image, the standard blur proxy. Returns -1 when the
// image is too small to measure.
func Sharpness(img image.Image) float64 {
	if img == nil {
		return -1
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return -1
	}

	gray := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			gray[y*w+x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
		}
	}

	var sum, sumSq float64
	n := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			lap := gray[(y-1)*w+x] + gray[(y+1)*w+x] + gray[y*w+x-1] + gray[y*w+x+1] - 4*gray[y*w+x]
			sum += lap
			sumSq += lap * lap
			n++
		}
	}
	if n == 0 {
		return -1
	}
	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
