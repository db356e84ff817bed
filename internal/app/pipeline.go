package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/rostra/internal/config"
	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/validate"
	"github.com/okian/rostra/pkg/logger"
	"github.com/okian/rostra/pkg/metrics"
)

// Transform produces a new snapshot from a snapshot.
type Transform func(ctx context.Context, t model.Tables) (model.Tables, error)

// Result summarizes a pipeline run.
type Result struct {
	// Tables is the last snapshot produced, committed or not.
	Tables    model.Tables
	Report    *validate.Report
	ExportDir string
	Committed int
}

func (s *Session) transforms() map[string]Transform {
	return map[string]Transform{
		config.StepBase:         s.BaseUpdates,
		config.StepTransactions: s.Transactions,
		config.StepRatings:      s.Ratings,
		config.StepSalaries:     s.Salaries,
		config.StepDepth:        s.Depth,
		config.StepImportance:   s.Importance,
		config.StepJerseys:      s.Jerseys,
	}
}

// Run executes steps in order, each on the previous step's output. Every
// transform result is committed unless the session is a dry run, in which
// case export is skipped too. The first failing step stops the run and
// leaves the session at the last committed snapshot.
func (s *Session) Run(ctx context.Context, steps []string) (Result, error) {
	transforms := s.transforms()
	for _, step := range steps {
		if _, ok := transforms[step]; !ok && step != config.StepValidate && step != config.StepExport {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownStep, step)
		}
	}

	s.logger.Info(ctx, "pipeline started", logger.Any("steps", steps), logger.Bool("dry_run", s.dryRun))
	res := Result{Tables: s.Current()}
	for _, step := range steps {
		start := time.Now()
		err := s.runStep(ctx, step, transforms[step], &res)
		elapsed := time.Since(start).Seconds()
		metrics.RecordStep(step, elapsed, err != nil)
		if err != nil {
			s.logger.Error(ctx, "step failed", logger.String("step", step), logger.Error(err))
			return res, fmt.Errorf("step %s: %w", step, err)
		}
		s.logger.Info(ctx, "step finished", logger.String("step", step), logger.Float64("seconds", elapsed))
	}
	s.logger.Info(ctx, "pipeline finished", logger.Int("commits", res.Committed))
	return res, nil
}

func (s *Session) runStep(ctx context.Context, step string, fn Transform, res *Result) error {
	switch step {
	case config.StepValidate:
		report := s.Validate(ctx, res.Tables)
		res.Report = &report
		return nil
	case config.StepExport:
		if s.dryRun {
			metrics.RecordDryRunSkip()
			s.logger.Info(ctx, "dry run, export skipped")
			return nil
		}
		dir, err := s.Export(ctx, res.Tables)
		res.ExportDir = dir
		return err
	}

	out, err := fn(ctx, res.Tables)
	if err != nil {
		return err
	}
	res.Tables = out
	if s.dryRun {
		metrics.RecordDryRunSkip()
		return nil
	}
	s.Commit(ctx, out)
	res.Committed++
	return nil
}
