// Package scoring predicts derived player ratings from pre-computed linear
// coefficient tables.
package scoring

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/okian/rostra/internal/domain/model"
)

// Rating bounds for every prediction.
const (
	minRating = 0
	maxRating = 99
)

// Coefficients is one linear model: an intercept plus a weight per input
// attribute column.
type Coefficients struct {
	Intercept float64            `koanf:"intercept"`
	Weights   map[string]float64 `koanf:"weights"`
}

// Option applies a configuration option to the RatingModel.
type Option func(*RatingModel)

// WithCoefficients sets the coefficient sets by position. The map is copied.
func WithCoefficients(sets map[model.Position]Coefficients) Option {
	return func(m *RatingModel) {
		for pos, c := range sets {
			m.byPosition[pos] = Coefficients{Intercept: c.Intercept, Weights: maps.Clone(c.Weights)}
		}
	}
}

// WithPosition sets the coefficient set of a single position.
func WithPosition(pos model.Position, c Coefficients) Option {
	return func(m *RatingModel) {
		m.byPosition[pos] = Coefficients{Intercept: c.Intercept, Weights: maps.Clone(c.Weights)}
	}
}

// RatingModel predicts overall ratings with one linear model per position.
type RatingModel struct {
	byPosition map[model.Position]Coefficients
}

// NewRatingModel creates a rating model with configuration options.
func NewRatingModel(opts ...Option) *RatingModel {
	m := &RatingModel{byPosition: make(map[model.Position]Coefficients)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Has reports whether pos can be scored.
func (m *RatingModel) Has(pos model.Position) bool {
	_, ok := m.byPosition[pos]
	return ok
}

// PredictOverall scores a player with the coefficients of its position.
// Inputs are summed in column-name order so the result does not depend on
// map iteration.
func (m *RatingModel) PredictOverall(p *model.Player) (int, error) {
	c, ok := m.byPosition[p.Ppos]
	if !ok {
		return 0, fmt.Errorf("%w: position %d", ErrNoCoefficients, p.Ppos)
	}
	raw := c.Intercept
	for _, col := range slices.Sorted(maps.Keys(c.Weights)) {
		v, ok := p.Value(col)
		if !ok {
			return 0, fmt.Errorf("%w: player %d column %s", ErrMissingAttribute, p.PGID, col)
		}
		raw += float64(v) * c.Weights[col]
	}
	return Scale(raw), nil
}

// ImportanceModel is the single importance model shared by all positions.
type ImportanceModel struct {
	Intercept float64
	Overall   float64
	Depth     float64
	Bias      map[model.Position]float64
}

// PredictImportance scores importance from overall rating, depth rank and a
// per-position bias.
func (m ImportanceModel) PredictImportance(overall, depth int, pos model.Position) (int, error) {
	bias, ok := m.Bias[pos]
	if !ok {
		return 0, fmt.Errorf("%w: importance bias for position %d", ErrNoCoefficients, pos)
	}
	raw := m.Intercept + m.Overall*float64(overall) + m.Depth*float64(depth) + bias
	return Scale(raw), nil
}

// Scale rounds half to even and clamps to [0, 99]. NaN scales to 0.
func Scale(raw float64) int {
	if math.IsNaN(raw) {
		return minRating
	}
	r := math.RoundToEven(raw)
	return int(math.Max(minRating, math.Min(maxRating, r)))
}
