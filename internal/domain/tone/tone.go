// Package tone defines the ordinal skin-tone scale the classifier maps into.
// The scale is versioned, immutable configuration: it is built once at
// startup, validated, and shared read-only by every request.
package tone

import (
	"errors"
	"fmt"

	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
)

// BrightnessBand is the coarse light-to-dark band a category belongs to.
type BrightnessBand string

const (
	BandLight  BrightnessBand = "light"
	BandMedium BrightnessBand = "medium"
	BandDeep   BrightnessBand = "deep"
)

// Category is one discrete bin on the light-to-dark scale.
type Category struct {
	Ordinal   int
	Name      string // display name, e.g. "Monk 5"
	Reference colorspace.RGB
	Band      BrightnessBand
}

// ID returns the compact zero-padded identifier, e.g. "Monk05".
func (c Category) ID() string {
	return fmt.Sprintf("Monk%02d", c.Ordinal)
}

// Scale is an ordered tone table, lightest first.
type Scale []Category

// Sentinel errors for scale validation.
var (
	ErrEmptyScale        = errors.New("tone scale is empty")
	ErrOrdinalGap        = errors.New("tone scale ordinals must be contiguous from 1")
	ErrBrightnessInverts = errors.New("tone scale reference brightness must strictly decrease")
)

// Validate checks the structural invariants of the scale: ordinals are
// contiguous starting at 1 and reference brightness strictly decreases
// with ordinal (lightest first, no inversions).
func (s Scale) Validate() error {
	if len(s) == 0 {
		return ErrEmptyScale
	}
	for i, c := range s {
		if c.Ordinal != i+1 {
			return fmt.Errorf("%w: position %d has ordinal %d", ErrOrdinalGap, i, c.Ordinal)
		}
		if i > 0 && c.Reference.Mean() >= s[i-1].Reference.Mean() {
			return fmt.Errorf("%w: %q (%.1f) is not darker than %q (%.1f)",
				ErrBrightnessInverts, c.Name, c.Reference.Mean(), s[i-1].Name, s[i-1].Reference.Mean())
		}
	}
	return nil
}

// ByOrdinal returns the category with the given ordinal.
func (s Scale) ByOrdinal(n int) (Category, bool) {
	if n < 1 || n > len(s) {
		return Category{}, false
	}
	return s[n-1], true
}

// Lightest reports whether ordinal n is among the k lightest categories.
func (s Scale) Lightest(n, k int) bool {
	return n >= 1 && n <= k
}

// Darkest reports whether ordinal n is among the k darkest categories.
func (s Scale) Darkest(n, k int) bool {
	return n > len(s)-k && n <= len(s)
}

// DefaultScale returns the ten-step Monk scale used when no scale is
// configured.
func DefaultScale() Scale {
	mk := func(ordinal int, hex string, band BrightnessBand) Category {
		ref, err := colorspace.ParseHex(hex)
		if err != nil {
			panic(fmt.Sprintf("builtin tone reference %q: %v", hex, err))
		}
		return Category{
			Ordinal:   ordinal,
			Name:      fmt.Sprintf("Monk %d", ordinal),
			Reference: ref,
			Band:      band,
		}
	}
	return Scale{
		mk(1, "#f6ede4", BandLight),
		mk(2, "#f3e7db", BandLight),
		mk(3, "#f7ead0", BandLight),
		mk(4, "#eadaba", BandMedium),
		mk(5, "#d7bd96", BandMedium),
		mk(6, "#a07e56", BandMedium),
		mk(7, "#825c43", BandMedium),
		mk(8, "#604134", BandDeep),
		mk(9, "#3a312a", BandDeep),
		mk(10, "#292420", BandDeep),
	}
}
