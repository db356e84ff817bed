package jersey_test

import (
	"errors"
	"testing"

	"github.com/okian/rostra/internal/domain/jersey"
	"github.com/okian/rostra/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func player(pgid, tgid, number, ovr int) model.Player {
	return model.Player{PGID: pgid, TGID: tgid, Jersey: number, Overall: ovr}
}

func byID(ps []model.Player) map[int]model.Player {
	out := make(map[int]model.Player, len(ps))
	for _, p := range ps {
		out[p.PGID] = p
	}
	return out
}

func TestResolve_Collision(t *testing.T) {
	Convey("Given two teammates wearing 23 rated 90 and 60", t, func() {
		roster := []model.Player{
			player(1, 5, 23, 90),
			player(2, 5, 23, 60),
			player(3, 5, 20, 70),
			player(4, 5, 21, 70),
			player(5, 5, 22, 70),
		}

		Convey("When 20-22 are taken and 24 is free", func() {
			out, changes, err := jersey.Resolve(roster)
			So(err, ShouldBeNil)
			got := byID(out)

			Convey("Then the 90 keeps 23 and the 60 moves to 24", func() {
				So(got[1].Jersey, ShouldEqual, 23)
				So(got[2].Jersey, ShouldEqual, 24)
				So(changes, ShouldResemble, []jersey.Reassignment{{TGID: 5, PGID: 2, From: 23, To: 24}})
			})

			Convey("Then the input is not modified", func() {
				So(roster[1].Jersey, ShouldEqual, 23)
			})
		})

		Convey("When the lower numbers of the decile are free", func() {
			out, _, err := jersey.Resolve(roster[:2])
			So(err, ShouldBeNil)

			Convey("Then the decile is scanned from its start", func() {
				So(byID(out)[2].Jersey, ShouldEqual, 20)
			})
		})

		Convey("When the whole 20s decile is taken", func() {
			full := append([]model.Player{}, roster[:2]...)
			for n, id := 20, 100; n <= 29; n, id = n+1, id+1 {
				if n != 23 {
					full = append(full, player(id, 5, n, 50))
				}
			}
			full = append(full, player(200, 5, 1, 50))
			out, _, err := jersey.Resolve(full)
			So(err, ShouldBeNil)

			Convey("Then the first free number from 1 is used", func() {
				So(byID(out)[2].Jersey, ShouldEqual, 2)
			})
		})
	})
}

func TestResolve_Properties(t *testing.T) {
	Convey("Given several teams with overlapping numbers", t, func() {
		var roster []model.Player
		id := 0
		for tgid := 1; tgid <= 4; tgid++ {
			for i := 0; i < 30; i++ {
				id++
				roster = append(roster, player(id, tgid, 10+i%7, 40+(id*7)%50))
			}
		}
		id++
		roster = append(roster, player(id, model.FreeAgentTeam, 10, 99))
		id++
		roster = append(roster, player(id, model.FreeAgentTeam, 10, 98))

		out, changes, err := jersey.Resolve(roster)
		So(err, ShouldBeNil)

		Convey("Then no rostered team has a repeated number", func() {
			seen := map[[2]int]bool{}
			for _, p := range out {
				if !p.Rostered() {
					continue
				}
				k := [2]int{p.TGID, p.Jersey}
				So(seen[k], ShouldBeFalse)
				seen[k] = true
			}
		})

		Convey("Then the best player of every collision keeps the number", func() {
			best := map[[2]int]model.Player{}
			for _, p := range roster {
				k := [2]int{p.TGID, p.Jersey}
				if b, ok := best[k]; !ok || p.Overall > b.Overall || (p.Overall == b.Overall && p.PGID < b.PGID) {
					best[k] = p
				}
			}
			got := byID(out)
			for k, p := range best {
				if model.IsRostered(k[0]) {
					So(got[p.PGID].Jersey, ShouldEqual, k[1])
				}
			}
		})

		Convey("Then each new number was free on its team when assigned", func() {
			inUse := map[int]map[int]bool{}
			for _, p := range roster {
				if inUse[p.TGID] == nil {
					inUse[p.TGID] = map[int]bool{}
				}
				inUse[p.TGID][p.Jersey] = true
			}
			for _, c := range changes {
				So(inUse[c.TGID][c.To], ShouldBeFalse)
				inUse[c.TGID][c.To] = true
			}
		})

		Convey("Then free agents are left alone", func() {
			got := byID(out)
			So(got[id].Jersey, ShouldEqual, 10)
			So(got[id-1].Jersey, ShouldEqual, 10)
		})
	})
}

func TestResolve_Exhausted(t *testing.T) {
	var roster []model.Player
	for n := jersey.MinNumber; n <= jersey.MaxNumber; n++ {
		roster = append(roster, player(n, 2, n, 60))
	}
	roster = append(roster, player(500, 2, 50, 10))

	out, changes, err := jersey.Resolve(roster)
	if !errors.Is(err, jersey.ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if out != nil || changes != nil {
		t.Fatalf("expected no partial result")
	}
}
