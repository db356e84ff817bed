package depthchart

import "github.com/okian/rostra/internal/domain/reference"

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithCapacities overrides the per-position slot limits.
func WithCapacities(c reference.Capacities) Option {
	return func(b *Builder) {
		b.capacities = c
	}
}

// WithStrictLongSnapper makes a team without a tight end fail the build
// instead of leaving the long snapper slot empty.
func WithStrictLongSnapper(strict bool) Option {
	return func(b *Builder) {
		b.strictLongSnapper = strict
	}
}
