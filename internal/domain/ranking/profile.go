package ranking

import (
	"errors"
	"fmt"
	"math"
)

// Profile is a named weight vector over the four factor scores. Weights must
// sum to 1; this is validated once at load time, never per request.
type Profile struct {
	Color    float64
	Context  float64
	Price    float64
	Contrast float64
}

// weightSumTolerance bounds floating-point drift in configured weights.
const weightSumTolerance = 1e-9

// ErrInvalidProfile marks a weight vector that does not sum to 1.
var ErrInvalidProfile = errors.New("ranking profile weights must sum to 1.0")

// Validate checks that the weights are non-negative and sum to 1 within
// tolerance.
func (p Profile) Validate() error {
	if p.Color < 0 || p.Context < 0 || p.Price < 0 || p.Contrast < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidProfile)
	}
	sum := p.Color + p.Context + p.Price + p.Contrast
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: got %.12f", ErrInvalidProfile, sum)
	}
	return nil
}

// ValidateProfiles validates every profile and the presence of the default.
func ValidateProfiles(profiles map[string]Profile, defaultName string) error {
	if len(profiles) == 0 {
		return fmt.Errorf("%w: no profiles defined", ErrInvalidProfile)
	}
	if _, ok := profiles[defaultName]; !ok {
		return fmt.Errorf("%w: default profile %q not defined", ErrInvalidProfile, defaultName)
	}
	for name, p := range profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return nil
}

// DefaultProfileName selects the profile used when a request names none.
const DefaultProfileName = "outfit"

// DefaultProfiles returns the built-in weight vectors: garments weight color
// heaviest; makeup trades the contrast factor for undertone-style context
// and price sensitivity.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"outfit": {Color: 0.55, Context: 0.15, Price: 0.15, Contrast: 0.15},
		"makeup": {Color: 0.50, Context: 0.25, Price: 0.25, Contrast: 0},
	}
}
