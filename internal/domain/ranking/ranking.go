// Package ranking scores and orders candidate products against a tone
// palette using weighted multi-factor scoring. The ranker is pure: it never
// mutates its inputs, never errors on valid runtime data, and surfaces
// unmatchable candidates at the bottom rather than dropping them.
package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
)

// Palette is a curated color set for one tone, read-only to this core.
type Palette struct {
	ToneID  string
	Primary []string
	Accent  []string
	Neutral []string
	Avoid   []string
}

// wearable returns the palette colors a candidate may match against.
func (p Palette) wearable() []string {
	out := make([]string, 0, len(p.Primary)+len(p.Accent)+len(p.Neutral))
	out = append(out, p.Primary...)
	out = append(out, p.Accent...)
	out = append(out, p.Neutral...)
	return out
}

// Candidate is one product under consideration.
type Candidate struct {
	ID    string
	Hex   string
	Tags  []string
	Price float64
}

// Scored annotates a candidate with its factor and total scores.
type Scored struct {
	Candidate
	ColorScore    float64
	ContextScore  float64
	PriceScore    float64
	ContrastScore float64
	TotalScore    float64
	MatchedColor  string
}

// Request is one ranking invocation.
type Request struct {
	Palette    Palette
	Candidates []Candidate
	Profile    string // ranking profile name; empty selects the default
	Occasion   string
	Contrast   string // requested contrast level: light, medium, high
	BudgetMin  float64
	BudgetMax  float64
}

// Scoring constants.
const (
	defaultFactorScore = 0.5 // mid score for absent/unknown compatibility signals
	minOverBudgetScore = 0.1

	// underBudgetBase/Slope: under-budget items are penalized less steeply
	// than over-budget ones; too cheap hints at quality, too expensive is a
	// hard constraint.
	underBudgetBase  = 0.7
	underBudgetSlope = 0.3
)

// Ranker holds the immutable compatibility tables and weight profiles.
// Safe for concurrent use.
type Ranker struct {
	profiles       map[string]Profile
	defaultProfile string
	occasionTable  map[string]map[string]float64
	contrastTable  map[string]map[string]float64
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithProfiles replaces the weight profiles. Profiles must already be
// validated (weights summing to 1).
func WithProfiles(profiles map[string]Profile, defaultName string) Option {
	return func(r *Ranker) {
		if len(profiles) > 0 {
			r.profiles = profiles
		}
		if defaultName != "" {
			r.defaultProfile = defaultName
		}
	}
}

// WithOccasionTable replaces the occasion compatibility table.
func WithOccasionTable(t map[string]map[string]float64) Option {
	return func(r *Ranker) {
		if len(t) > 0 {
			r.occasionTable = t
		}
	}
}

// WithContrastTable replaces the contrast compatibility table.
func WithContrastTable(t map[string]map[string]float64) Option {
	return func(r *Ranker) {
		if len(t) > 0 {
			r.contrastTable = t
		}
	}
}

// New creates a Ranker with the built-in tables and profiles.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		profiles:       DefaultProfiles(),
		defaultProfile: DefaultProfileName,
		occasionTable:  DefaultOccasionTable(),
		contrastTable:  DefaultContrastTable(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every candidate and returns them ordered by total score
// descending, ties broken by price ascending then id ascending. An empty
// candidate list yields an empty result.
func (r *Ranker) Rank(req Request) []Scored {
	profile, ok := r.profiles[req.Profile]
	if !ok {
		profile = r.profiles[r.defaultProfile]
	}

	paletteColors := parsePalette(req.Palette.wearable())

	out := make([]Scored, 0, len(req.Candidates))
	for _, cand := range req.Candidates {
		s := Scored{Candidate: cand}
		s.ColorScore, s.MatchedColor = colorScore(cand.Hex, paletteColors)
		s.ContextScore = r.contextScore(cand.Tags, req.Occasion)
		s.PriceScore = priceScore(cand.Price, req.BudgetMin, req.BudgetMax)
		s.ContrastScore = r.contrastScore(cand, req.Contrast)
		s.TotalScore = profile.Color*s.ColorScore +
			profile.Context*s.ContextScore +
			profile.Price*s.PriceScore +
			profile.Contrast*s.ContrastScore
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type paletteColor struct {
	hex string
	rgb colorspace.RGB
}

func parsePalette(hexes []string) []paletteColor {
	out := make([]paletteColor, 0, len(hexes))
	for _, hx := range hexes {
		rgb, err := colorspace.ParseHex(hx)
		if err != nil {
			continue
		}
		out = append(out, paletteColor{hex: hx, rgb: rgb})
	}
	return out
}

// colorScore is 1 minus the normalized RGB distance to the nearest palette
// color. A missing or unparseable candidate color scores 0 so the candidate
// still surfaces, transparently, at the bottom.
func colorScore(hex string, palette []paletteColor) (float64, string) {
	rgb, err := colorspace.ParseHex(hex)
	if err != nil || len(palette) == 0 {
		return 0, ""
	}
	best := 0.0
	matched := ""
	for _, pc := range palette {
		score := 1 - colorspace.DistanceRGB(rgb, pc.rgb)/colorspace.MaxRGBDistance
		score = math.Max(0, math.Min(1, score))
		if score > best {
			best = score
			matched = pc.hex
		}
	}
	return best, matched
}

// contextScore looks the candidate's tags up in the occasion table, keeping
// the best match. Absent or unknown tags earn the documented mid score.
func (r *Ranker) contextScore(tags []string, occasion string) float64 {
	weights, ok := r.occasionTable[strings.ToLower(occasion)]
	if !ok || len(tags) == 0 {
		return defaultFactorScore
	}
	best := -1.0
	for _, tag := range tags {
		if w, ok := weights[strings.ToLower(tag)]; ok && w > best {
			best = w
		}
	}
	if best < 0 {
		return defaultFactorScore
	}
	return best
}

// priceScore is 1 inside the budget and decays asymmetrically outside it.
func priceScore(price, budgetMin, budgetMax float64) float64 {
	if budgetMax <= 0 || budgetMax < budgetMin {
		return defaultFactorScore
	}
	switch {
	case price >= budgetMin && price <= budgetMax:
		return 1.0
	case price < budgetMin:
		if budgetMin <= 0 {
			return 1.0
		}
		return underBudgetBase + underBudgetSlope*(price/budgetMin)
	default:
		overage := (price - budgetMax) / budgetMax
		return math.Max(minOverBudgetScore, 1-overage)
	}
}

// contrastScore looks up the candidate's inferred contrast against the
// requested level.
func (r *Ranker) contrastScore(cand Candidate, requested string) float64 {
	weights, ok := r.contrastTable[strings.ToLower(requested)]
	if !ok {
		weights, ok = r.contrastTable["medium"]
		if !ok {
			return defaultFactorScore
		}
	}
	if w, ok := weights[inferContrast(cand)]; ok {
		return w
	}
	return defaultFactorScore
}

// inferContrast derives a coarse contrast level for the candidate, from its
// tags when present, else from the relative luminance of its color.
func inferContrast(cand Candidate) string {
	for _, tag := range cand.Tags {
		switch strings.ToLower(tag) {
		case "light", "pastel":
			return "light"
		case "soft":
			return "soft"
		case "bold", "bright", "dramatic":
			return "bold"
		case "dark", "black":
			return "dark"
		}
	}
	rgb, err := colorspace.ParseHex(cand.Hex)
	if err != nil {
		return "medium"
	}
	lum := rgb.RelativeLuminance()
	switch {
	case lum < 0.25:
		return "dark"
	case lum < 0.45:
		return "medium"
	case lum < 0.70:
		return "soft"
	default:
		return "light"
	}
}
