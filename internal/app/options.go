package service

import (
	"github.com/okian/rostra/internal/adapters/repository"
	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/scoring"
	"github.com/okian/rostra/internal/domain/updates"
	"github.com/okian/rostra/pkg/logger"
)

// Inputs are the optional feeds and models the transforms read. A nil or
// empty feed skips its update.
type Inputs struct {
	Bios         []updates.BioUpdate
	Additions    *updates.Additions
	Deletions    []updates.Deletion
	Transactions []updates.Transaction
	Ratings      []updates.RatingUpdate

	// RatingAttrs are the attribute columns a rating feed may override.
	RatingAttrs     []string
	RatingModel     *scoring.RatingModel
	ImportanceModel *scoring.ImportanceModel

	// Ranges and Columns drive the range and missing-value checks. Empty
	// Columns means every column of the loaded PLAY layout.
	Ranges  map[string]model.Range
	Columns []string
}

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the store used by the export step.
func WithStore(store repository.Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithInputs sets the feeds and models.
func WithInputs(in Inputs) Option {
	return func(s *Session) {
		s.inputs = in
	}
}

// WithContractYears sets the contract length given to unsigned players.
func WithContractYears(years int) Option {
	return func(s *Session) {
		if years > 0 {
			s.contractYears = years
		}
	}
}

// WithStrictLongSnapper fails the depth step when a team has no TE.
func WithStrictLongSnapper(strict bool) Option {
	return func(s *Session) {
		s.strictLongSnapper = strict
	}
}

// WithDryRun runs pipelines without committing or exporting.
func WithDryRun(dry bool) Option {
	return func(s *Session) {
		s.dryRun = dry
	}
}
