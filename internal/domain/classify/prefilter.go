package classify

import (
	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/tone"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
)

// brightnessProfile carries the independent brightness and saturation
// proxies the prefilter agrees on. Any single measure is unstable under
// lighting variation; bands fire only when every proxy concurs.
type brightnessProfile struct {
	rgb        colorspace.RGB
	mean       float64 // plain channel mean, 0..255
	luma       float64 // Rec.601 weighted mean, 0..255
	lightness  float64 // CIELAB L*, 0..100
	value      float64 // HSV V, 0..255
	saturation float64 // HSV S, 0..100
	spread     float64 // max(channel) - min(channel)
	maxChannel float64
	lab        colorspace.LAB
}

func profileOf(rgb colorspace.RGB) brightnessProfile {
	hsv := rgb.ToHSV()
	lab := rgb.ToLAB()
	return brightnessProfile{
		rgb:        rgb,
		mean:       rgb.Mean(),
		luma:       rgb.Luma(),
		lightness:  lab.L,
		value:      hsv.V * 255,
		saturation: hsv.S * 100,
		spread:     rgb.Spread(),
		maxChannel: rgb.MaxChannel(),
		lab:        lab,
	}
}

// Conjunctive band predicates. Every proxy must agree before a band fires.
func (p brightnessProfile) ultraLight() bool {
	return p.mean > 200 && p.luma > 195 && p.lightness > 75 && p.value > 190 && p.maxChannel > 220
}

func (p brightnessProfile) veryLight() bool {
	return p.mean > 180 && p.luma > 175 && p.lightness > 70 && p.value > 170 && p.spread < 60
}

func (p brightnessProfile) light() bool {
	return p.mean > 160 && p.luma > 155 && p.lightness > 65 && p.saturation < 30
}

// lightShortcut maps a fired light band straight to one of the lightest
// categories. Generic distance matching under-classifies very light skin
// because the measurement channels saturate near white and compress
// distances, so these inputs bypass it entirely.
func (c *Classifier) lightShortcut(p brightnessProfile) (tone.Category, float64, bool) {
	switch {
	case p.ultraLight():
		if p.lightness > 80 || p.mean > 220 {
			return c.category(1), 0.99, true
		}
		return c.category(2), 0.98, true

	case p.veryLight():
		if p.saturation < 15 && p.lightness > 78 {
			return c.category(1), 0.97, true
		}
		if p.spread < 40 && p.luma > 185 {
			return c.category(2), 0.95, true
		}
		return c.category(2), 0.93, true

	case p.light():
		if p.lightness > 75 {
			return c.category(1), 0.90, true
		}
		if p.lightness > 70 {
			return c.category(2), 0.88, true
		}
		return c.category(3), 0.85, true
	}
	return tone.Category{}, 0, false
}

// ITA breakpoints: angle lower bound, target ordinal, rule confidence. Near
// the dark end the lightness channel refines within the band.
func (c *Classifier) itaClassify(p brightnessProfile) (tone.Category, float64, Reason) {
	ita := colorspace.ITA(p.lab)
	reason := ReasonItaRule
	if p.lab.B >= -0.1 && p.lab.B <= 0.1 {
		reason = ReasonNumericEdgeCase
	}

	// Boundary corroboration: when a secondary brightness proxy agrees the
	// color is bright, prefer the lighter adjacent category. A deliberate
	// light-skin bias, stated as policy.
	if p.mean > 170 {
		if p.lightness > 68 || ita > 30 {
			return c.category(2), 0.85, reason
		}
		if p.lightness > 65 || ita > 15 {
			return c.category(3), 0.80, reason
		}
	} else if p.mean > 150 {
		if p.lightness > 70 || ita > 25 {
			return c.category(3), 0.80, reason
		}
		if p.lightness > 65 || ita > 10 {
			return c.category(4), 0.75, reason
		}
	}

	switch {
	case ita > 50:
		return c.category(1), 0.90, reason
	case ita > 35:
		return c.category(2), 0.85, reason
	case ita > 20:
		return c.category(3), 0.80, reason
	case ita > 5:
		return c.category(4), 0.75, reason
	case ita > -20:
		switch {
		case p.lightness > 65:
			return c.category(5), 0.70, reason
		case p.lightness > 55:
			return c.category(6), 0.70, reason
		default:
			return c.category(7), 0.70, reason
		}
	default:
		switch {
		case p.lightness > 45:
			return c.category(8), 0.65, reason
		case p.lightness > 35:
			return c.category(9), 0.65, reason
		default:
			return c.category(10), 0.65, reason
		}
	}
}
