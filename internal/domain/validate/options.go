package validate

import (
	"maps"

	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/scoring"
	"github.com/okian/rostra/pkg/logger"
)

// Default thresholds.
const (
	DefaultRosterSize      = 53
	DefaultRosterTolerance = 3
	DefaultMaxDeviation    = 3
)

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithRanges sets the declared valid range per PLAY column.
func WithRanges(ranges map[string]model.Range) Option {
	return func(v *Validator) {
		v.ranges = maps.Clone(ranges)
	}
}

// WithColumns sets the PLAY columns checked for missing values.
func WithColumns(cols []string) Option {
	return func(v *Validator) {
		v.columns = cols
	}
}

// WithRatingModel enables the rating deviation check.
func WithRatingModel(m *scoring.RatingModel) Option {
	return func(v *Validator) {
		v.ratings = m
	}
}

// WithRosterSize sets the expected roster size and allowed deviation.
func WithRosterSize(size, tolerance int) Option {
	return func(v *Validator) {
		if size > 0 {
			v.rosterSize = size
		}
		if tolerance >= 0 {
			v.rosterTolerance = tolerance
		}
	}
}

// WithMaxDeviation sets the rating deviation that is reported.
func WithMaxDeviation(points int) Option {
	return func(v *Validator) {
		if points > 0 {
			v.maxDeviation = points
		}
	}
}

// WithLogger sets the logger findings are written to.
func WithLogger(l logger.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}
