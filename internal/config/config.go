// Package config defines the editor configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config with defaults; Load layers file and env on top.
// - Feed and model paths are optional; an empty name skips that input.
// - Errors are wrapped with this package's sentinels.
package config

import "path/filepath"

// Pipeline step names accepted in Steps.
const (
	StepBase         = "base"
	StepTransactions = "transactions"
	StepRatings      = "ratings"
	StepSalaries     = "salaries"
	StepDepth        = "depth"
	StepImportance   = "importance"
	StepJerseys      = "jerseys"
	StepValidate     = "validate"
	StepExport       = "export"
)

// DefaultSteps is the full edit pipeline in run order.
var DefaultSteps = []string{
	StepBase, StepTransactions, StepRatings, StepSalaries, StepDepth,
	StepImportance, StepJerseys, StepValidate, StepExport,
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// SaveDir holds one sub-directory per save.
	SaveDir string `koanf:"save_dir" validate:"required"`

	// ImportName is the save to edit; ExportName the save to write.
	ImportName string `koanf:"import_name" validate:"required"`
	ExportName string `koanf:"export_name" validate:"omitempty,nefield=ImportName"`

	// DataDict is the xlsx data dictionary. Optional.
	DataDict string `koanf:"data_dict"`

	// UpdatesDir holds the update feeds named below.
	UpdatesDir         string `koanf:"updates_dir"`
	UpdateBios         string `koanf:"update_bios"`
	UpdateAdditions    string `koanf:"update_additions"`
	UpdateDeletions    string `koanf:"update_deletions"`
	UpdateTransactions string `koanf:"update_transactions"`
	UpdateRatings      string `koanf:"update_ratings"`

	// RatingModel and ImportanceModel are YAML coefficient files.
	RatingModel     string `koanf:"rating_model"`
	ImportanceModel string `koanf:"importance_model"`

	// ContractYears is the length of contracts given to unsigned players.
	ContractYears int `koanf:"contract_years" validate:"gte=1,lte=25"`

	// StrictLongSnapper fails the depth chart when a team has no TE.
	StrictLongSnapper bool `koanf:"strict_long_snapper"`

	// Steps lists the pipeline steps to run, in order.
	Steps []string `koanf:"steps" validate:"min=1,unique,dive,oneof=base transactions ratings salaries depth importance jerseys validate export"`

	// DryRun runs every step without committing or exporting.
	DryRun bool `koanf:"dry_run"`

	// MetricsFile receives the run metrics in Prometheus text format.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		SaveDir:       "saves",
		UpdatesDir:    "updates",
		ContractYears: 3,
		Steps:         append([]string(nil), DefaultSteps...),
	}
}

// FeedPath resolves a feed file name against UpdatesDir. An empty name
// stays empty.
func (c *Config) FeedPath(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Join(c.UpdatesDir, name)
}

// Runs reports whether step is part of the pipeline.
func (c *Config) Runs(step string) bool {
	for _, s := range c.Steps {
		if s == step {
			return true
		}
	}
	return false
}
