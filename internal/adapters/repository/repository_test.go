package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/okian/rostra/internal/adapters/repository"
	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/reference"
	"github.com/okian/rostra/internal/domain/updates"
	. "github.com/smartystreets/goconvey/convey"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// seedSave writes a two-team save named "league" under dir.
func seedSave(t *testing.T, dir string) {
	write(t, filepath.Join(dir, "league", "league_PLAY.csv"),
		"PGID,POID,PFNA,PLNA,PPOS,POPS,TGID,POVR,PJEN,PSPD\n"+
			"3,103,Ann,Bee,3,3,2,80,11,91\n"+
			"1,101,,Cole,0,0,1,75,12,\n"+
			"2,102,Dan,Dee,0,0,1,70.0,5,60\n")
	write(t, filepath.Join(dir, "league", "league_TEAM.csv"),
		"TGID,TSNA,TCTY\n2,Lions,Detroit\n1,Bears,Chicago\n")
	write(t, filepath.Join(dir, "league", "league_DCHT.csv"),
		"TGID,PGID,PPOS,DDEP\n1,2,0,1\n1,1,0,0\n")
	write(t, filepath.Join(dir, "league", "league_INJY.csv"),
		"TGID,PGID,INJL\n2,3,4\n")
}

func TestCSVStore(t *testing.T) {
	Convey("Given a save on disk", t, func() {
		dir := t.TempDir()
		seedSave(t, dir)
		ctx := context.Background()
		store := repository.NewCSVStore(dir, repository.WithImportName("league"), repository.WithExportName("edited"))

		tables, schemas, err := store.Load(ctx)
		So(err, ShouldBeNil)

		Convey("Then tables are typed and sorted", func() {
			So(len(tables.Players), ShouldEqual, 3)
			So(tables.Players[0].PGID, ShouldEqual, 1)
			So(tables.Players[1].PGID, ShouldEqual, 2)
			So(tables.Players[1].Overall, ShouldEqual, 70)
			So(tables.Players[0].FirstName, ShouldEqual, "")
			So(tables.Players[0].Attrs, ShouldNotContainKey, model.AttrSpeed)
			So(tables.Players[2].Attrs[model.AttrSpeed], ShouldEqual, 91)
			So(tables.Teams[0].Name, ShouldEqual, "Bears")
			So(tables.Teams[0].Fields["tcty"], ShouldEqual, "Chicago")
			So(tables.Depth[0].PGID, ShouldEqual, 1)
			So(tables.Injuries[0].Fields["injl"], ShouldEqual, "4")
			So(schemas[model.TablePlayers].Columns[0], ShouldEqual, "pgid")
		})

		Convey("When exporting and reloading", func() {
			out, err := store.Export(ctx, tables, schemas)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, filepath.Join(dir, "edited"))

			again, _, err := repository.NewCSVStore(dir, repository.WithImportName("edited")).Load(ctx)

			Convey("Then the same rows come back", func() {
				So(err, ShouldBeNil)
				So(again, ShouldResemble, tables)
			})

			Convey("Then headers keep their spelling", func() {
				b, err := os.ReadFile(store.TablePath("edited", model.TablePlayers))
				So(err, ShouldBeNil)
				lines := strings.Split(string(b), "\n")
				So(lines[0], ShouldEqual, "PGID,POID,PFNA,PLNA,PPOS,POPS,TGID,POVR,PJEN,PSPD")
				So(lines[1], ShouldEqual, "1,101,,Cole,0,0,1,75,12,")
			})
		})

		Convey("When no export name is set", func() {
			_, err := repository.NewCSVStore(dir, repository.WithImportName("league")).Export(ctx, tables, schemas)

			Convey("Then export fails", func() {
				So(errors.Is(err, repository.ErrNoExportName), ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing save", t, func() {
		_, _, err := repository.NewCSVStore(t.TempDir(), repository.WithImportName("none")).Load(context.Background())

		Convey("Then load reports it", func() {
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a PLAY table without a required column", t, func() {
		dir := t.TempDir()
		seedSave(t, dir)
		write(t, filepath.Join(dir, "league", "league_PLAY.csv"), "PGID,PFNA,PLNA,PPOS,TGID\n1,A,B,0,1\n")
		_, _, err := repository.NewCSVStore(dir, repository.WithImportName("league")).Load(context.Background())

		Convey("Then load fails with a schema mismatch", func() {
			So(errors.Is(err, model.ErrSchemaMismatch), ShouldBeTrue)
		})
	})

	Convey("Given a non-numeric attribute cell", t, func() {
		dir := t.TempDir()
		seedSave(t, dir)
		write(t, filepath.Join(dir, "league", "league_PLAY.csv"),
			"PGID,PFNA,PLNA,PPOS,TGID,POVR,PSPD\n1,A,B,0,1,70,fast\n")
		_, _, err := repository.NewCSVStore(dir, repository.WithImportName("league")).Load(context.Background())

		Convey("Then load fails", func() {
			So(errors.Is(err, repository.ErrMalformed), ShouldBeTrue)
		})
	})
}

func writeDictionary(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheets := map[model.TableName][][]any{
		model.TablePlayers: {
			{"column", "view_id", "category", "range_obs"},
			{"PLNA", 3, "bio", ""},
			{"PGID", 1, "id", "[0, 5000]"},
			{"PFNA", 2, "bio", ""},
			{"PPOS", 4, "position", "[0, 20]"},
			{"TGID", 5, "team", ""},
			{"POVR", 6, "ratings", "[0, 99]"},
			{"PSPD", 7, "Attributes", "[0, 99]"},
		},
		model.TableTeams:    {{"column", "view_id"}, {"TSNA", 2}, {"TGID", 1}},
		model.TableDepth:    {{"column", "view_id"}, {"TGID", 1}, {"PGID", 2}, {"PPOS", 3}, {"DDEP", 4}},
		model.TableInjuries: {{"column", "view_id"}, {"TGID", 1}, {"PGID", 2}},
	}
	if err := f.SetSheetName(f.GetSheetName(0), string(model.TablePlayers)); err != nil {
		t.Fatal(err)
	}
	for _, table := range model.AllTables {
		if table != model.TablePlayers {
			if _, err := f.NewSheet(string(table)); err != nil {
				t.Fatal(err)
			}
		}
		for i, row := range sheets[table] {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			r := row
			if err := f.SetSheetRow(string(table), cell, &r); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestDictionary(t *testing.T) {
	Convey("Given a data dictionary workbook", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "dict.xlsx")
		writeDictionary(t, path)

		dict, err := repository.LoadDictionary(path)
		So(err, ShouldBeNil)

		Convey("Then columns follow view_id", func() {
			s, ok := dict.Schema(model.TablePlayers)
			So(ok, ShouldBeTrue)
			So(s.Columns, ShouldResemble, []string{"pgid", "pfna", "plna", "ppos", "tgid", "povr", "pspd"})
			So(s.Headers[0], ShouldEqual, "PGID")
		})

		Convey("Then ranges and categories are exposed", func() {
			ranges := dict.Ranges(model.TablePlayers)
			So(ranges[model.ColPGID], ShouldResemble, model.Range{Min: 0, Max: 5000})
			So(ranges, ShouldNotContainKey, model.ColLastName)
			So(dict.Attributes(model.TablePlayers, repository.CategoryAttributes), ShouldResemble, []string{"pspd"})
			So(len(dict.Columns(model.TableDepth)), ShouldEqual, 4)
		})

		Convey("When loading a save through it", func() {
			seedSave(t, dir)
			store := repository.NewCSVStore(dir,
				repository.WithImportName("league"),
				repository.WithExportName("out"),
				repository.WithDictionary(dict),
			)
			tables, schemas, err := store.Load(context.Background())
			So(err, ShouldBeNil)

			Convey("Then undeclared columns are dropped", func() {
				So(schemas[model.TableTeams].Columns, ShouldResemble, []string{"tgid", "tsna"})
				So(tables.Teams[0].Fields, ShouldBeEmpty)
				So(tables.Players[0].POID, ShouldEqual, 0)
			})

			Convey("Then export uses the declared order", func() {
				_, err := store.Export(context.Background(), tables, schemas)
				So(err, ShouldBeNil)
				b, err := os.ReadFile(store.TablePath("out", model.TablePlayers))
				So(err, ShouldBeNil)
				So(strings.SplitN(string(b), "\n", 2)[0], ShouldEqual, "PGID,PFNA,PLNA,PPOS,TGID,POVR,PSPD")
			})
		})
	})

	Convey("Given a missing workbook", t, func() {
		_, err := repository.LoadDictionary(filepath.Join(t.TempDir(), "none.xlsx"))
		So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
	})
}

func TestParseRange(t *testing.T) {
	cases := map[string]model.Range{
		"[0, 99]":     {Min: 0, Max: 99},
		" [-5,5] ":    {Min: -5, Max: 5},
		"[1.0, 32.0]": {Min: 1, Max: 32},
	}
	for in, want := range cases {
		got, err := repository.ParseRange(in)
		if err != nil || got != want {
			t.Errorf("ParseRange(%q) = %v, %v", in, got, err)
		}
	}
	for _, bad := range []string{"0, 99", "[0 99]", "[a, 1]"} {
		if _, err := repository.ParseRange(bad); !errors.Is(err, repository.ErrMalformed) {
			t.Errorf("ParseRange(%q) should fail, got %v", bad, err)
		}
	}
}

func TestFeeds(t *testing.T) {
	Convey("Given update feeds", t, func() {
		dir := t.TempDir()
		bios := filepath.Join(dir, "bios.csv")
		write(t, bios, "TSNA,PFNA,PLNA,PFNA_UPD,PLNA_UPD\nBears,,Cole,Chris,\n")
		adds := filepath.Join(dir, "adds.csv")
		write(t, adds, "PGID,PFNA,PLNA,PPOS,TGID,POVR\n9,New,Guy,1,2,65\n")
		drops := filepath.Join(dir, "drops.csv")
		write(t, drops, "PGID,PFNA,PLNA\n3,Ann,Bee\n")
		txs := filepath.Join(dir, "tx.csv")
		write(t, txs, "date,pgid,tx,tgid_fr,tgid_to\n2024-03-01,3,Trade,2,1\n2024-03-02,4,sign,,2\n")
		rates := filepath.Join(dir, "rate.csv")
		write(t, rates, "PGID,PSPD,PAWR\n1,95,\n")

		Convey("Then each feed is decoded", func() {
			b, err := repository.LoadBios(bios)
			So(err, ShouldBeNil)
			So(b, ShouldResemble, []updates.BioUpdate{{Team: "Bears", LastName: "Cole", NewFirstName: "Chris"}})

			a, err := repository.LoadAdditions(adds)
			So(err, ShouldBeNil)
			So(a.Columns, ShouldResemble, []string{"pgid", "pfna", "plna", "ppos", "tgid", "povr"})
			So(a.Players[0].Ppos, ShouldEqual, model.HB)

			d, err := repository.LoadDeletions(drops)
			So(err, ShouldBeNil)
			So(d, ShouldResemble, []updates.Deletion{{PGID: 3, FirstName: "Ann", LastName: "Bee"}})

			tx, err := repository.LoadTransactions(txs)
			So(err, ShouldBeNil)
			So(tx[0], ShouldResemble, updates.Transaction{Date: "2024-03-01", PGID: 3, Type: updates.TxTrade, FromTeam: 2, ToTeam: 1})
			So(tx[1].FromTeam, ShouldEqual, 0)

			r, err := repository.LoadRatings(rates)
			So(err, ShouldBeNil)
			So(r[0].Values, ShouldResemble, map[string]int{"pspd": 95})
		})

		Convey("Then a feed without its key columns is rejected", func() {
			_, err := repository.LoadDeletions(rates)
			So(errors.Is(err, model.ErrSchemaMismatch), ShouldBeTrue)
		})

		Convey("Then a missing feed is reported", func() {
			_, err := repository.LoadBios(filepath.Join(dir, "none.csv"))
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestModels(t *testing.T) {
	Convey("Given coefficient files", t, func() {
		dir := t.TempDir()
		rating := filepath.Join(dir, "povr.yaml")
		write(t, rating, `positions:
  "0":
    intercept: 10
    weights:
      pawr: 0.5
      pspd: 0.25
  WR:
    intercept: -2.5
    weights:
      pcth: 1
`)
		importance := filepath.Join(dir, "pimp.yaml")
		write(t, importance, `intercept: 5
overall: 0.5
depth: -10
bias:
  QB: 20
  "19": -5
`)

		Convey("Then the rating model scores by position", func() {
			m, err := repository.LoadRatingModel(rating)
			So(err, ShouldBeNil)
			So(m.Has(model.QB), ShouldBeTrue)
			So(m.Has(model.WR), ShouldBeTrue)
			So(m.Has(model.HB), ShouldBeFalse)
			ovr, err := m.PredictOverall(&model.Player{Ppos: model.QB, Attrs: map[string]int{"pawr": 80, "pspd": 80}})
			So(err, ShouldBeNil)
			So(ovr, ShouldEqual, 70)
		})

		Convey("Then the importance model carries its bias", func() {
			m, err := repository.LoadImportanceModel(importance)
			So(err, ShouldBeNil)
			So(m.Overall, ShouldEqual, 0.5)
			So(m.Bias[model.QB], ShouldEqual, 20)
			So(m.Bias[model.K], ShouldEqual, -5)
			v, err := m.PredictImportance(80, 1, model.QB)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 55)
		})

		Convey("Then unknown positions are rejected", func() {
			write(t, rating, "positions:\n  XX:\n    intercept: 1\n")
			_, err := repository.LoadRatingModel(rating)
			So(errors.Is(err, reference.ErrUnknownPosition), ShouldBeTrue)
		})

		Convey("Then a missing file is reported", func() {
			_, err := repository.LoadImportanceModel(filepath.Join(dir, "none.yaml"))
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
