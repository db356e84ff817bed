package service_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/okian/rostra/internal/app"
	"github.com/okian/rostra/internal/config"
	"github.com/okian/rostra/internal/domain/depthchart"
	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/scoring"
	"github.com/okian/rostra/internal/domain/updates"
	"github.com/okian/rostra/internal/domain/validate"
	"github.com/okian/rostra/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type memStore struct {
	exports []model.Tables
	err     error
}

func (m *memStore) Load(context.Context) (model.Tables, model.Schemas, error) {
	return model.Tables{}, nil, errors.New("not used")
}

func (m *memStore) Export(_ context.Context, t model.Tables, _ model.Schemas) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.exports = append(m.exports, t.Clone())
	return "out", nil
}

func player(pgid, tgid int, pos model.Position, jersey int) model.Player {
	return model.Player{
		PGID: pgid, POID: 100 + pgid,
		FirstName: "First", LastName: "Last",
		Ppos: pos, Pops: pos, TGID: tgid, Overall: 50, Jersey: jersey,
		Attrs: map[string]int{
			model.AttrAwareness: 80, model.AttrSpeed: 70, model.AttrKickReturn: 60,
			model.AttrBreakTackle: 50, model.AttrCatching: 40,
		},
	}
}

func league() model.Tables {
	fa := player(7, model.FreeAgentTeam, model.HB, 30)
	fa.Salary, fa.ContractYears = 100, 2
	return model.Tables{
		Players: []model.Player{
			player(1, 1, model.QB, 12),
			player(2, 1, model.QB, 12),
			player(3, 1, model.TE, 80),
			player(4, 1, model.K, 3),
			player(5, 1, model.P, 4),
			player(6, 2, model.HB, 22),
			fa,
		},
		Teams:    []model.Team{{TGID: 1, Name: "Bears"}, {TGID: 2, Name: "Lions"}},
		Injuries: []model.Injury{{TGID: 1, PGID: 3}},
	}
}

func inputs() service.Inputs {
	sets := make(map[model.Position]scoring.Coefficients)
	imp := scoring.ImportanceModel{Overall: 1, Depth: -10, Bias: make(map[model.Position]float64)}
	for pos := model.MinPosition; pos <= model.MaxRosterPosition; pos++ {
		sets[pos] = scoring.Coefficients{Intercept: 50, Weights: map[string]float64{model.AttrAwareness: 0.25}}
		imp.Bias[pos] = 0
	}
	ratings := scoring.NewRatingModel(scoring.WithCoefficients(sets))
	return service.Inputs{
		Transactions: []updates.Transaction{
			{Date: "2024-03-01", PGID: 6, Type: updates.TxTrade, FromTeam: 2, ToTeam: 1},
		},
		Deletions:       []updates.Deletion{{PGID: 99, FirstName: "No", LastName: "Body"}},
		RatingModel:     ratings,
		ImportanceModel: &imp,
	}
}

func find(t model.Tables, pgid int) model.Player {
	for _, p := range t.Players {
		if p.PGID == pgid {
			return p
		}
	}
	return model.Player{}
}

func TestSession(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session over a league", t, func() {
		s := service.New(league(), nil, service.WithLogger(logger.Discard()))

		Convey("Then it has an id and a private snapshot", func() {
			So(s.ID(), ShouldNotBeEmpty)
			cur := s.Current()
			cur.Players[0].Overall = 99
			So(s.Current().Players[0].Overall, ShouldEqual, 50)
		})

		Convey("When a transform result is committed and the session reset", func() {
			next, err := s.Jerseys(ctx, s.Current())
			So(err, ShouldBeNil)
			So(s.Current(), ShouldResemble, league())

			s.Commit(ctx, next)
			So(find(s.Current(), 2).Jersey, ShouldNotEqual, 12)

			s.Reset(ctx)
			So(s.Current(), ShouldResemble, league())
		})

		Convey("When searching by name", func() {
			matches, err := s.FindPlayer("first last")
			So(err, ShouldBeNil)
			So(len(matches), ShouldEqual, 7)
			So(matches[0].Team, ShouldEqual, "Bears")
		})

		Convey("When exporting without a store", func() {
			_, err := s.Export(ctx, s.Current())
			So(errors.Is(err, service.ErrNoStore), ShouldBeTrue)
		})

		Convey("When a model is missing", func() {
			_, err := s.Ratings(ctx, s.Current())
			So(errors.Is(err, service.ErrMissingModel), ShouldBeTrue)
			_, err = s.Importance(ctx, s.Current())
			So(errors.Is(err, service.ErrMissingModel), ShouldBeTrue)
		})

		Convey("When base updates run without feeds", func() {
			out, err := s.BaseUpdates(ctx, s.Current())
			So(err, ShouldBeNil)
			So(out.Players, ShouldResemble, league().Players)
			So(out.Injuries, ShouldBeEmpty)
		})
	})
}

func TestSessionSchemas(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session loaded with a PLAY layout", t, func() {
		schemas := model.Schemas{model.TablePlayers: model.NewSchema(model.TablePlayers, []string{
			"PGID", "POID", "PFNA", "PLNA", "PPOS", "POPS", "TGID", "POVR", "PJEN",
			"PAWR", "PSPD", "PKRT", "PBTK", "PCTH",
		})}
		tables := league()
		delete(tables.Players[1].Attrs, model.AttrSpeed)
		s := service.New(tables, schemas, service.WithLogger(logger.Discard()))

		Convey("When validating without configured columns", func() {
			r := s.Validate(ctx, s.Current())

			Convey("Then every loaded column is checked for empty cells", func() {
				missing := r.Of(validate.CheckMissingValues)
				So(missing, ShouldHaveLength, 1)
				So(missing[0].Subjects, ShouldResemble, []int{2})
				So(missing[0].Message, ShouldContainSubstring, "column pspd missing for 1 players")
			})
		})

		Convey("When the caller edits the returned layouts", func() {
			got := s.Schemas()
			delete(got, model.TablePlayers)
			schemas[model.TablePlayers].Columns[0] = "changed"

			Convey("Then the session keeps its own copy", func() {
				sc, ok := s.Schemas()[model.TablePlayers]
				So(ok, ShouldBeTrue)
				So(sc.Columns[0], ShouldEqual, model.ColPGID)
				So(sc.Has(model.AttrSpeed), ShouldBeTrue)
			})
		})
	})
}

func TestPipeline(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session with every input", t, func() {
		store := &memStore{}
		s := service.New(league(), nil,
			service.WithLogger(logger.Discard()),
			service.WithStore(store),
			service.WithInputs(inputs()),
		)

		Convey("When the full pipeline runs", func() {
			res, err := s.Run(ctx, config.DefaultSteps)
			So(err, ShouldBeNil)

			Convey("Then every transform is committed and exported", func() {
				So(res.Committed, ShouldEqual, 7)
				So(res.ExportDir, ShouldEqual, "out")
				So(len(store.exports), ShouldEqual, 1)
				So(store.exports[0], ShouldResemble, s.Current())
				So(res.Report, ShouldNotBeNil)
			})

			Convey("Then the edits are in the snapshot", func() {
				cur := s.Current()
				So(cur.Injuries, ShouldBeEmpty)
				So(find(cur, 6).TGID, ShouldEqual, 1)
				So(find(cur, 6).PrevTeam, ShouldEqual, 2)
				So(find(cur, 1).Overall, ShouldEqual, 70)
				So(find(cur, 1).Salary, ShouldEqual, 60)
				So(find(cur, 1).Bonus, ShouldEqual, 21)
				So(find(cur, 7).Salary, ShouldEqual, 0)
				So(find(cur, 1).Importance, ShouldEqual, 70)
				So(find(cur, 2).Importance, ShouldEqual, 60)
				So(find(cur, 1).Jersey, ShouldEqual, 12)
				So(find(cur, 2).Jersey, ShouldEqual, 10)
				So(cur.Depth, ShouldContain, model.DepthEntry{TGID: 1, PGID: 3, Ppos: model.LS})
			})
		})

		Convey("When the pipeline is a dry run", func() {
			dry := service.New(league(), nil,
				service.WithLogger(logger.Discard()),
				service.WithStore(store),
				service.WithInputs(inputs()),
				service.WithDryRun(true),
			)
			res, err := dry.Run(ctx, config.DefaultSteps)

			Convey("Then nothing is committed or exported", func() {
				So(err, ShouldBeNil)
				So(res.Committed, ShouldEqual, 0)
				So(store.exports, ShouldBeEmpty)
				So(dry.Current(), ShouldResemble, league())
				So(find(res.Tables, 2).Jersey, ShouldEqual, 10)
			})
		})

		Convey("When a step name is unknown", func() {
			_, err := s.Run(ctx, []string{config.StepBase, "fly"})

			Convey("Then nothing runs", func() {
				So(errors.Is(err, service.ErrUnknownStep), ShouldBeTrue)
				So(s.Current(), ShouldResemble, league())
			})
		})

		Convey("When export fails", func() {
			store.err = errors.New("disk full")
			res, err := s.Run(ctx, []string{config.StepBase, config.StepExport})

			Convey("Then earlier commits stay", func() {
				So(err, ShouldNotBeNil)
				So(res.Committed, ShouldEqual, 1)
				So(s.Current().Injuries, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a strict long snapper rule and a team without a TE", t, func() {
		s := service.New(league(), nil,
			service.WithLogger(logger.Discard()),
			service.WithStrictLongSnapper(true),
		)
		_, err := s.Run(ctx, []string{config.StepDepth})

		Convey("Then the depth step fails and nothing is committed", func() {
			So(errors.Is(err, depthchart.ErrNoLongSnapper), ShouldBeTrue)
			So(s.Current().Depth, ShouldBeEmpty)
		})
	})
}
