package service

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/okian/rostra/internal/domain/depthchart"
	"github.com/okian/rostra/internal/domain/jersey"
	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/reference"
	"github.com/okian/rostra/internal/domain/salary"
	"github.com/okian/rostra/internal/domain/scoring"
	"github.com/okian/rostra/internal/domain/updates"
	"github.com/okian/rostra/internal/domain/validate"
	"github.com/okian/rostra/pkg/logger"
	"github.com/okian/rostra/pkg/metrics"
)

// Transforms take a snapshot and return a replacement. They do not commit.

// BaseUpdates applies missing bios, roster additions and deletions, then
// clears the injury table.
func (s *Session) BaseUpdates(ctx context.Context, t model.Tables) (model.Tables, error) {
	out := t
	players := t.Players

	if len(s.inputs.Bios) > 0 {
		updated, n, err := updates.UpdateBios(players, s.inputs.Bios, reference.NewTeamMap(t.Teams))
		if err != nil {
			return model.Tables{}, fmt.Errorf("update bios: %w", err)
		}
		players = updated
		s.logger.Info(ctx, "bios updated", logger.Int("players", n))
	}
	if s.inputs.Additions != nil {
		added, err := updates.AddPlayers(players, s.schemas[model.TablePlayers], *s.inputs.Additions)
		if err != nil {
			return model.Tables{}, fmt.Errorf("add players: %w", err)
		}
		players = added
		s.logger.Info(ctx, "players added", logger.Int("players", len(s.inputs.Additions.Players)))
	}
	if len(s.inputs.Deletions) > 0 {
		kept, n := updates.DropPlayers(players, s.inputs.Deletions)
		players = kept
		s.logger.Info(ctx, "players deleted", logger.Int("players", n))
	}

	out.Players = players
	out.Injuries = updates.ClearInjuries(t.Injuries)
	return out, nil
}

// Transactions executes the transaction feed in date order.
func (s *Session) Transactions(ctx context.Context, t model.Tables) (model.Tables, error) {
	if len(s.inputs.Transactions) == 0 {
		s.logger.Info(ctx, "no transactions to apply")
		return t, nil
	}
	players, sum, err := updates.ExecuteTransactions(t.Players, s.inputs.Transactions)
	if err != nil {
		return model.Tables{}, fmt.Errorf("execute transactions: %w", err)
	}
	for _, tx := range slices.Sorted(maps.Keys(sum.Applied)) {
		metrics.RecordTransactions(string(tx), sum.Applied[tx])
	}
	if len(sum.Unmatched) > 0 {
		s.logger.Warn(ctx, "transactions for unknown players", logger.Any("pgids", sum.Unmatched))
	}
	s.logger.Info(ctx, "transactions applied", logger.Int("transactions", len(s.inputs.Transactions)-len(sum.Unmatched)))
	out := t
	out.Players = players
	return out, nil
}

// Ratings writes the rating feed and re-predicts every overall rating.
func (s *Session) Ratings(ctx context.Context, t model.Tables) (model.Tables, error) {
	if s.inputs.RatingModel == nil {
		return model.Tables{}, fmt.Errorf("%w: rating model", ErrMissingModel)
	}
	players, err := updates.UpdateRatings(t.Players, s.inputs.Ratings, s.inputs.RatingAttrs, s.inputs.RatingModel)
	if err != nil {
		return model.Tables{}, fmt.Errorf("update ratings: %w", err)
	}
	s.logger.Info(ctx, "ratings updated", logger.Int("overrides", len(s.inputs.Ratings)))
	out := t
	out.Players = players
	return out, nil
}

// Salaries clears free-agent contracts and assigns contracts to unsigned
// rostered players.
func (s *Session) Salaries(ctx context.Context, t model.Tables) (model.Tables, error) {
	players, sum, err := salary.NewAssigner(salary.WithContractYears(s.contractYears)).Assign(t.Players)
	if err != nil {
		return model.Tables{}, fmt.Errorf("assign salaries: %w", err)
	}
	metrics.RecordSalaries(sum.Assigned, sum.FreeAgentsCleared)
	s.logger.Info(ctx, "salaries assigned",
		logger.Int("assigned", sum.Assigned),
		logger.Int("free_agents_cleared", sum.FreeAgentsCleared),
	)
	out := t
	out.Players = players
	return out, nil
}

// Depth rebuilds the depth chart of every team.
func (s *Session) Depth(ctx context.Context, t model.Tables) (model.Tables, error) {
	res, err := depthchart.NewBuilder(depthchart.WithStrictLongSnapper(s.strictLongSnapper)).Build(t.Players)
	if err != nil {
		return model.Tables{}, fmt.Errorf("build depth chart: %w", err)
	}
	positions := reference.Positions()
	for _, v := range res.Vacancies {
		label, _ := positions.Label(v.Ppos)
		metrics.RecordDepthVacancy(label)
		s.logger.Warn(ctx, "depth chart slot left empty", logger.Int("tgid", v.TGID), logger.String("position", label))
	}
	metrics.UpdateDepthRows(len(res.Entries))
	s.logger.Info(ctx, "depth chart built", logger.Int("rows", len(res.Entries)))
	out := t
	out.Depth = res.Entries
	return out, nil
}

// Importance re-predicts player importance from overall and depth rank.
func (s *Session) Importance(ctx context.Context, t model.Tables) (model.Tables, error) {
	if s.inputs.ImportanceModel == nil {
		return model.Tables{}, fmt.Errorf("%w: importance model", ErrMissingModel)
	}
	players, err := scoring.ApplyImportance(t.Players, t.Depth, *s.inputs.ImportanceModel)
	if err != nil {
		return model.Tables{}, fmt.Errorf("apply importance: %w", err)
	}
	s.logger.Info(ctx, "importance updated", logger.Int("players", len(players)))
	out := t
	out.Players = players
	return out, nil
}

// Jerseys resolves duplicate numbers within each team.
func (s *Session) Jerseys(ctx context.Context, t model.Tables) (model.Tables, error) {
	players, moved, err := jersey.Resolve(t.Players)
	if err != nil {
		return model.Tables{}, fmt.Errorf("resolve jerseys: %w", err)
	}
	for _, r := range moved {
		s.logger.Debug(ctx, "jersey reassigned",
			logger.Int("tgid", r.TGID),
			logger.Int("pgid", r.PGID),
			logger.Int("from", r.From),
			logger.Int("to", r.To),
		)
	}
	metrics.RecordJerseyReassignments(len(moved))
	s.logger.Info(ctx, "jerseys resolved", logger.Int("reassigned", len(moved)))
	out := t
	out.Players = players
	return out, nil
}

// Validate checks a snapshot. It never fails; findings are in the report.
func (s *Session) Validate(ctx context.Context, t model.Tables) validate.Report {
	cols := s.inputs.Columns
	if len(cols) == 0 {
		cols = s.playerColumns()
	}
	opts := []validate.Option{
		validate.WithColumns(cols),
		validate.WithRanges(s.inputs.Ranges),
		validate.WithLogger(s.logger.Named("validate")),
	}
	if s.inputs.RatingModel != nil {
		opts = append(opts, validate.WithRatingModel(s.inputs.RatingModel))
	}
	report := validate.NewValidator(opts...).Run(ctx, t)
	for _, c := range validate.Checks {
		metrics.UpdateValidationFindings(string(c), report.Count(c))
	}
	return report
}

// playerColumns is the loaded PLAY layout, or the required columns when the
// save came without one.
func (s *Session) playerColumns() []string {
	if sc, ok := s.schemas[model.TablePlayers]; ok && len(sc.Columns) > 0 {
		return sc.Columns
	}
	return model.RequiredPlayerColumns
}

// Export writes a snapshot through the store and returns its directory.
func (s *Session) Export(ctx context.Context, t model.Tables) (string, error) {
	if s.store == nil {
		return "", ErrNoStore
	}
	dir, err := s.store.Export(ctx, t, s.schemas)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return dir, nil
}

// FindPlayer searches the current snapshot by name.
func (s *Session) FindPlayer(name string) ([]updates.Match, error) {
	t := s.Current()
	return updates.FindPlayer(name, t.Players, reference.Positions(), reference.NewTeamMap(t.Teams))
}
