package scoring

import "errors"

// Sentinel error kinds for scoring.
var (
	ErrNoCoefficients   = errors.New("no coefficients")
	ErrMissingAttribute = errors.New("missing attribute")
)
