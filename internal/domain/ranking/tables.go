package ranking

// DefaultOccasionTable maps a requested occasion to tag compatibility
// weights. Tags missing from a row fall back to the mid score.
func DefaultOccasionTable() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"work": {
			"formal": 0.9, "business": 0.95, "professional": 0.9,
			"casual": 0.3, "party": 0.1, "festive": 0.2,
		},
		"casual": {
			"casual": 0.95, "everyday": 0.9, "weekend": 0.9,
			"formal": 0.2, "business": 0.1, "party": 0.7,
		},
		"festive_wedding": {
			"festive": 0.95, "party": 0.9, "celebration": 0.9,
			"formal": 0.8, "elegant": 0.85, "casual": 0.3,
		},
		"formal_black_tie": {
			"formal": 0.95, "elegant": 0.95, "black_tie": 1.0,
			"business": 0.7, "casual": 0.1, "party": 0.6,
		},
	}
}

// DefaultContrastTable maps a requested contrast level to compatibility
// weights over the candidate's inferred contrast.
func DefaultContrastTable() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"light":  {"light": 1.0, "soft": 0.8, "medium": 0.5, "bold": 0.2, "dark": 0.1},
		"medium": {"medium": 1.0, "light": 0.7, "soft": 0.8, "bold": 0.7, "dark": 0.6},
		"high":   {"bold": 1.0, "dark": 0.9, "dramatic": 1.0, "medium": 0.6, "light": 0.3},
	}
}

// ValidateTables checks that the compatibility tables are usable: non-empty,
// with every weight in [0,1].
func ValidateTables(occasion, contrast map[string]map[string]float64) error {
	for _, t := range []map[string]map[string]float64{occasion, contrast} {
		if len(t) == 0 {
			return ErrEmptyTable
		}
		for _, row := range t {
			for _, w := range row {
				if w < 0 || w > 1 {
					return ErrTableWeightRange
				}
			}
		}
	}
	return nil
}
