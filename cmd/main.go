package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/okian/rostra/internal/adapters/repository"
	service "github.com/okian/rostra/internal/app"
	"github.com/okian/rostra/internal/config"
	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/updates"
	"github.com/okian/rostra/pkg/logger"
	"github.com/okian/rostra/pkg/metrics"
)

func main() {
	// Initialize logging
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(
		logger.WithWriter(os.Stderr),
		logger.WithFormat(cfg.LogFormat),
		logger.WithLevel(cfg.LogLevel),
	); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(ctx, cfg, os.Stdout); err != nil {
		logger.Get().Error(ctx, "run failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

// run loads the save and its inputs, runs the configured pipeline and
// writes the validation report to out.
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log := logger.Named("rostra")

	var dict *repository.Dictionary
	if cfg.DataDict != "" {
		d, err := repository.LoadDictionary(cfg.DataDict)
		if err != nil {
			return fmt.Errorf("load data dictionary: %w", err)
		}
		dict = d
	}

	store := repository.NewCSVStore(cfg.SaveDir,
		repository.WithImportName(cfg.ImportName),
		repository.WithExportName(cfg.ExportName),
		repository.WithDictionary(dict),
		repository.WithLogger(logger.Named("store")),
	)
	tables, schemas, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load save: %w", err)
	}

	in, err := loadInputs(cfg, dict)
	if err != nil {
		return err
	}

	sess := service.New(tables, schemas,
		service.WithLogger(logger.Named("session")),
		service.WithStore(store),
		service.WithInputs(in),
		service.WithContractYears(cfg.ContractYears),
		service.WithStrictLongSnapper(cfg.StrictLongSnapper),
		service.WithDryRun(cfg.DryRun),
	)
	log.Info(ctx, "session opened", logger.String("session", sess.ID()), logger.String("save", cfg.ImportName))

	res, runErr := sess.Run(ctx, cfg.Steps)
	if res.Report != nil {
		if _, err := res.Report.WriteTo(out); err != nil {
			log.Warn(ctx, "failed to write validation report", logger.Error(err))
		}
	}
	if res.ExportDir != "" {
		log.Info(ctx, "save written", logger.String("dir", res.ExportDir))
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "failed to write metrics", logger.Error(err))
		}
	}
	return runErr
}

// loadInputs reads every configured feed and coefficient file.
func loadInputs(cfg *config.Config, dict *repository.Dictionary) (service.Inputs, error) {
	var in service.Inputs
	var err error

	if path := cfg.FeedPath(cfg.UpdateBios); path != "" {
		if in.Bios, err = repository.LoadBios(path); err != nil {
			return in, fmt.Errorf("load bios feed: %w", err)
		}
	}
	if path := cfg.FeedPath(cfg.UpdateAdditions); path != "" {
		add, err := repository.LoadAdditions(path)
		if err != nil {
			return in, fmt.Errorf("load additions feed: %w", err)
		}
		in.Additions = &add
	}
	if path := cfg.FeedPath(cfg.UpdateDeletions); path != "" {
		if in.Deletions, err = repository.LoadDeletions(path); err != nil {
			return in, fmt.Errorf("load deletions feed: %w", err)
		}
	}
	if path := cfg.FeedPath(cfg.UpdateTransactions); path != "" {
		if in.Transactions, err = repository.LoadTransactions(path); err != nil {
			return in, fmt.Errorf("load transactions feed: %w", err)
		}
	}
	if path := cfg.FeedPath(cfg.UpdateRatings); path != "" {
		if in.Ratings, err = repository.LoadRatings(path); err != nil {
			return in, fmt.Errorf("load ratings feed: %w", err)
		}
	}

	if cfg.RatingModel != "" {
		if in.RatingModel, err = repository.LoadRatingModel(cfg.RatingModel); err != nil {
			return in, fmt.Errorf("load rating model: %w", err)
		}
	}
	if cfg.ImportanceModel != "" {
		m, err := repository.LoadImportanceModel(cfg.ImportanceModel)
		if err != nil {
			return in, fmt.Errorf("load importance model: %w", err)
		}
		in.ImportanceModel = &m
	}

	if dict != nil {
		in.RatingAttrs = dict.Attributes(model.TablePlayers, repository.CategoryAttributes)
		in.Ranges = dict.Ranges(model.TablePlayers)
	} else {
		in.RatingAttrs = feedColumns(in.Ratings)
	}
	return in, nil
}

// feedColumns lists the columns a rating feed sets, sorted.
func feedColumns(feed []updates.RatingUpdate) []string {
	var cols []string
	for _, u := range feed {
		for col := range u.Values {
			if !slices.Contains(cols, col) {
				cols = append(cols, col)
			}
		}
	}
	slices.Sort(cols)
	return cols
}
