// Package classify maps an estimated skin color onto the ordinal tone scale.
// Two independent methods are arbitrated: a rule-based classifier (brightness
// prefilter, light-skin shortcut, ITA breakpoints) that is the more reliable
// at the light end, and an adaptive-weight multi-space distance matcher that
// generalizes better elsewhere.
package classify

import (
	"math"

	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/tone"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
)

// Method identifies which classification method produced the result.
type Method string

const (
	MethodRule     Method = "rule"
	MethodDistance Method = "distance"
)

// Reason explains the branch taken, distinguishing why a result looks the
// way it does without ever raising an error.
type Reason string

const (
	ReasonLightShortcut   Reason = "light_shortcut"
	ReasonItaRule         Reason = "ita_rule"
	ReasonDistanceMatch   Reason = "distance_match"
	ReasonNumericEdgeCase Reason = "numeric_edge_case"
)

// Result is the classification outcome. Confidence is always finite and in
// [0,1]; MatchDistance is the (possibly trust-scaled) distance-match minimum.
type Result struct {
	Category      tone.Category
	Confidence    float64
	MatchDistance float64
	Method        Method
	Reason        Reason
}

// Arbitration constants: a rule result this confident among the lightest
// categories overrides the distance match, and its reported distance is
// scaled down to reflect the added trust.
const (
	ruleOverrideConfidence = 0.75
	ruleOverrideMaxOrdinal = 3
	ruleDistanceScale      = 0.8

	// distanceConfidenceScale converts a combined distance into a
	// confidence; distanceConfidenceFloor keeps it off the floor for
	// far-from-everything inputs.
	distanceConfidenceScale = 150.0
	distanceConfidenceFloor = 0.35
)

// Classifier classifies colors against one immutable tone scale. Safe for
// concurrent use.
type Classifier struct {
	scale tone.Scale
}

// New creates a Classifier for the given validated scale.
func New(scale tone.Scale) *Classifier {
	return &Classifier{scale: scale}
}

// Classify runs both methods and arbitrates.
func (c *Classifier) Classify(rgb colorspace.RGB) Result {
	p := profileOf(rgb)

	ruleCat, ruleConf, ruleReason := c.ruleClassify(p)
	distCat, minDist := c.DistanceMatch(rgb)

	if ruleConf > ruleOverrideConfidence && ruleCat.Ordinal <= ruleOverrideMaxOrdinal {
		return Result{
			Category:      ruleCat,
			Confidence:    ruleConf,
			MatchDistance: minDist * ruleDistanceScale,
			Method:        MethodRule,
			Reason:        ruleReason,
		}
	}

	conf := math.Max(distanceConfidenceFloor, 1-minDist/distanceConfidenceScale)
	return Result{
		Category:      distCat,
		Confidence:    math.Min(1, conf),
		MatchDistance: minDist,
		Method:        MethodDistance,
		Reason:        ReasonDistanceMatch,
	}
}

// ruleClassify runs the brightness prefilter, the light-skin shortcut and
// the ITA fallback, returning the rule method's candidate.
func (c *Classifier) ruleClassify(p brightnessProfile) (tone.Category, float64, Reason) {
	if cat, conf, ok := c.lightShortcut(p); ok {
		return cat, conf, ReasonLightShortcut
	}
	return c.itaClassify(p)
}

// category clamps an ordinal into the scale. Scales shorter than the Monk
// default still get a sensible nearest bin.
func (c *Classifier) category(ordinal int) tone.Category {
	if ordinal < 1 {
		ordinal = 1
	}
	if ordinal > len(c.scale) {
		ordinal = len(c.scale)
	}
	cat, _ := c.scale.ByOrdinal(ordinal)
	return cat
}
