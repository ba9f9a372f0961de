package classify

import (
	"math"

	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/tone"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
)

// distanceWeights are the combined-distance term weights. They are not
// fixed: as the estimate brightens, the brightness term dominates and the
// chroma terms recede, because hue and saturation noise swamps Euclidean
// distance at high brightness and systematically drags light colors into
// darker bins.
type distanceWeights struct {
	rgb, lab, hue, brightness float64
}

// brightnessPenalty returns the asymmetric penalty multiplier for a
// reference brightness: categories much darker than the estimate are
// penalized far more heavily than categories close to it.
type brightnessPenalty func(refMean float64) float64

func weightsFor(mean float64) (distanceWeights, brightnessPenalty) {
	switch {
	case mean > 220:
		return distanceWeights{rgb: 0.10, lab: 0.10, hue: 0.05, brightness: 0.75},
			func(ref float64) float64 {
				switch {
				case ref < 180:
					return 5.0
				case ref < 200:
					return 2.0
				default:
					return 0.2
				}
			}
	case mean > 200:
		return distanceWeights{rgb: 0.15, lab: 0.15, hue: 0.05, brightness: 0.65},
			func(ref float64) float64 {
				switch {
				case ref < 170:
					return 3.5
				case ref < 190:
					return 1.8
				default:
					return 0.4
				}
			}
	case mean > 180:
		return distanceWeights{rgb: 0.25, lab: 0.25, hue: 0.10, brightness: 0.40},
			func(ref float64) float64 {
				if ref < 150 {
					return 2.0
				}
				return 0.8
			}
	default:
		return distanceWeights{rgb: 0.40, lab: 0.40, hue: 0.20, brightness: 0},
			func(float64) float64 { return 1.0 }
	}
}

// DistanceMatch finds the minimum combined-distance category for the color.
// A color equal to a category's reference has distance 0 to it.
func (c *Classifier) DistanceMatch(rgb colorspace.RGB) (tone.Category, float64) {
	mean := rgb.Mean()
	w, penalty := weightsFor(mean)

	best := c.scale[0]
	minDist := math.Inf(1)
	for _, cat := range c.scale {
		refMean := cat.Reference.Mean()

		rgbDist := colorspace.DistanceRGB(rgb, cat.Reference)
		labDist := colorspace.DistanceLAB(rgb, cat.Reference)
		hueDist := colorspace.HueDistance(rgb, cat.Reference) / 180.0 * 100.0
		brightDiff := math.Abs(mean-refMean) * penalty(refMean)

		d := w.rgb*rgbDist + w.lab*labDist + w.hue*hueDist + w.brightness*brightDiff
		if d < minDist {
			minDist = d
			best = cat
		}
	}
	return best, minDist
}
