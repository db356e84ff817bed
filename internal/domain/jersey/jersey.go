// Package jersey resolves duplicate jersey numbers within a team.
package jersey

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/okian/rostra/internal/domain/model"
)

// Reassignment records one changed number.
type Reassignment struct {
	TGID int
	PGID int
	From int
	To   int
}

type slot struct {
	tgid, number int
}

// Resolve returns a copy of players where no two rostered teammates share a
// number. In each collision the highest rated player (lowest pgid on a tie)
// keeps the number; the others, lowest rated first, get the first free
// number of their current decile, falling back to the first free number in
// 1-98. If a team runs out of numbers the call fails and nothing is changed.
func Resolve(players []model.Player) ([]model.Player, []Reassignment, error) {
	regs := make(map[int]*registry)
	occupants := make(map[slot][]int)
	for i := range players {
		p := &players[i]
		if !p.Rostered() {
			continue
		}
		reg, ok := regs[p.TGID]
		if !ok {
			reg = &registry{}
			regs[p.TGID] = reg
		}
		reg.add(p.Jersey)
		k := slot{tgid: p.TGID, number: p.Jersey}
		occupants[k] = append(occupants[k], i)
	}

	var losers []int
	for _, idx := range occupants {
		if len(idx) < 2 {
			continue
		}
		keep := slices.MinFunc(idx, func(a, b int) int { return keeperOrder(&players[a], &players[b]) })
		for _, i := range idx {
			if i != keep {
				losers = append(losers, i)
			}
		}
	}
	slices.SortFunc(losers, func(a, b int) int {
		pa, pb := &players[a], &players[b]
		return cmp.Or(
			cmp.Compare(pa.TGID, pb.TGID),
			cmp.Compare(pa.Jersey, pb.Jersey),
			cmp.Compare(pa.Overall, pb.Overall),
			cmp.Compare(pa.PGID, pb.PGID),
		)
	})

	out := model.ClonePlayers(players)
	changes := make([]Reassignment, 0, len(losers))
	for _, i := range losers {
		p := &out[i]
		reg := regs[p.TGID]
		n, ok := reg.next(p.Jersey)
		if !ok {
			return nil, nil, fmt.Errorf("%w: team %d player %d", ErrExhausted, p.TGID, p.PGID)
		}
		reg.add(n)
		changes = append(changes, Reassignment{TGID: p.TGID, PGID: p.PGID, From: p.Jersey, To: n})
		p.Jersey = n
	}
	return out, changes, nil
}

// keeperOrder sorts the player who keeps a contested number first.
func keeperOrder(a, b *model.Player) int {
	return cmp.Or(cmp.Compare(b.Overall, a.Overall), cmp.Compare(a.PGID, b.PGID))
}
