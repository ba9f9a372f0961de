package ranking

import "errors"

// Sentinel errors for load-time table validation. These allow errors.Is
// from the config layer.
var (
	ErrEmptyTable       = errors.New("compatibility table is empty")
	ErrTableWeightRange = errors.New("compatibility weight outside [0,1]")
)
