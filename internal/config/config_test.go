package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/okian/rostra/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.SaveDir, convey.ShouldEqual, "saves")
			convey.So(cfg.ContractYears, convey.ShouldEqual, 3)
			convey.So(cfg.Steps, convey.ShouldResemble, config.DefaultSteps)
			convey.So(cfg.DryRun, convey.ShouldBeFalse)
		})

		convey.Convey("Then steps are not shared with the defaults", func() {
			cfg.Steps[0] = "changed"
			convey.So(config.DefaultSteps[0], convey.ShouldEqual, config.StepBase)
		})

		convey.Convey("Then it should fail validation without an import name", func() {
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfig_FeedPath(t *testing.T) {
	cfg := config.New()
	cfg.UpdatesDir = "feeds"
	if got := cfg.FeedPath("bios.csv"); got != filepath.Join("feeds", "bios.csv") {
		t.Errorf("FeedPath = %q", got)
	}
	if got := cfg.FeedPath(""); got != "" {
		t.Errorf("FeedPath of empty name = %q", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *config.Config {
		c := config.New()
		c.ImportName = "base"
		c.ExportName = "edited"
		return c
	}
	cases := []struct {
		name   string
		mutate func(*config.Config)
		ok     bool
	}{
		{"defaults with names", func(*config.Config) {}, true},
		{"unknown step", func(c *config.Config) { c.Steps = []string{"base", "fly"} }, false},
		{"repeated step", func(c *config.Config) { c.Steps = []string{"base", "base"} }, false},
		{"no steps", func(c *config.Config) { c.Steps = nil }, false},
		{"zero contract years", func(c *config.Config) { c.ContractYears = 0 }, false},
		{"bad log format", func(c *config.Config) { c.LogFormat = "xml" }, false},
		{"export over import", func(c *config.Config) { c.ExportName = "base" }, false},
		{"export without name", func(c *config.Config) { c.ExportName = "" }, false},
		{"dry run without export name", func(c *config.Config) {
			c.ExportName = ""
			c.DryRun = true
		}, true},
		{"no export step", func(c *config.Config) {
			c.ExportName = ""
			c.Steps = []string{"validate"}
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("want ErrInvalidConfig, got %v", err)
			}
		})
	}
}
