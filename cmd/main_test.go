package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/rostra/internal/config"
	"github.com/okian/rostra/internal/domain/updates"
	"github.com/okian/rostra/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func seed(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "saves", "base", "base_PLAY.csv"),
		"PGID,POID,PFNA,PLNA,PPOS,POPS,TGID,POVR,PJEN,PTSA,PCON\n"+
			"1,101,Ann,Bee,0,0,1,80,12,300,3\n"+
			"2,102,Cal,Dee,0,0,1,70,12,0,0\n"+
			"3,103,Eve,Fox,3,3,1009,60,88,90,2\n")
	writeFile(t, filepath.Join(dir, "saves", "base", "base_TEAM.csv"), "TGID,TSNA\n1,Bears\n")
	writeFile(t, filepath.Join(dir, "saves", "base", "base_DCHT.csv"), "TGID,PGID,PPOS,DDEP\n1,1,0,0\n")
	writeFile(t, filepath.Join(dir, "saves", "base", "base_INJY.csv"), "TGID,PGID,INJL\n1,2,3\n")
	writeFile(t, filepath.Join(dir, "updates", "tx.csv"), "date,pgid,tx,tgid_fr,tgid_to\n2024-02-01,3,sign,,1\n")

	cfg := config.New()
	cfg.SaveDir = filepath.Join(dir, "saves")
	cfg.UpdatesDir = filepath.Join(dir, "updates")
	cfg.ImportName = "base"
	cfg.ExportName = "edited"
	cfg.UpdateTransactions = "tx.csv"
	cfg.MetricsFile = filepath.Join(dir, "rostra.prom")
	cfg.Steps = []string{config.StepBase, config.StepTransactions, config.StepJerseys, config.StepValidate, config.StepExport}
	return cfg
}

func TestRun(t *testing.T) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		t.Fatal(err)
	}

	convey.Convey("Given a save and a transaction feed", t, func() {
		cfg := seed(t)
		var out bytes.Buffer

		convey.Convey("When the pipeline runs", func() {
			err := run(context.Background(), cfg, &out)

			convey.Convey("Then the edited save is written", func() {
				convey.So(err, convey.ShouldBeNil)
				b, err := os.ReadFile(filepath.Join(cfg.SaveDir, "edited", "edited_PLAY.csv"))
				convey.So(err, convey.ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(string(b)), "\n")
				convey.So(lines[0], convey.ShouldEqual, "PGID,POID,PFNA,PLNA,PPOS,POPS,TGID,POVR,PJEN,PTSA,PCON")
				convey.So(lines[1], convey.ShouldEqual, "1,101,Ann,Bee,0,0,1,80,12,300,3")
				convey.So(lines[2], convey.ShouldEqual, "2,102,Cal,Dee,0,0,1,70,10,0,0")
				convey.So(lines[3], convey.ShouldStartWith, "3,103,Eve,Fox,3,3,1,60,88")
				injuries, err := os.ReadFile(filepath.Join(cfg.SaveDir, "edited", "edited_INJY.csv"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(strings.TrimSpace(string(injuries)), convey.ShouldEqual, "TGID,PGID,INJL")
			})

			convey.Convey("Then the report and metrics are written", func() {
				convey.So(out.String(), convey.ShouldContainSubstring, "empty_position")
				_, err := os.Stat(cfg.MetricsFile)
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the run is dry", func() {
			cfg.DryRun = true
			err := run(context.Background(), cfg, &out)

			convey.Convey("Then nothing is exported", func() {
				convey.So(err, convey.ShouldBeNil)
				_, err := os.Stat(filepath.Join(cfg.SaveDir, "edited"))
				convey.So(os.IsNotExist(err), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a configured feed is missing", func() {
			cfg.UpdateBios = "none.csv"
			err := run(context.Background(), cfg, &out)

			convey.Convey("Then the run fails before any step", func() {
				convey.So(err, convey.ShouldNotBeNil)
				_, statErr := os.Stat(filepath.Join(cfg.SaveDir, "edited"))
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})
	})
}

func TestFeedColumns(t *testing.T) {
	feed := []updates.RatingUpdate{
		{PGID: 1, Values: map[string]int{"pspd": 90, "pawr": 80}},
		{PGID: 2, Values: map[string]int{"pspd": 70, "pcth": 60}},
	}
	got := feedColumns(feed)
	want := []string{"pawr", "pcth", "pspd"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("feedColumns = %v, want %v", got, want)
	}
}
