// Package depthchart builds team depth charts from player ratings.
//
// Positions 0-18 are ranked by overall rating within each team and cut at
// the position's capacity. Kicking and specialist slots (19-25) hold one
// player each, chosen by a dedicated rule.
package depthchart

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/reference"
)

// Vacancy is a specialist slot left empty because no player was eligible.
type Vacancy struct {
	TGID int
	Ppos model.Position
}

// Result is a built depth chart.
type Result struct {
	Entries   []model.DepthEntry
	Vacancies []Vacancy
}

// Builder assigns rostered players to depth chart slots.
type Builder struct {
	capacities        reference.Capacities
	strictLongSnapper bool
}

// NewBuilder creates a builder with the default capacities.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{capacities: reference.DefaultCapacities()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the depth chart of every rostered team, ordered by team,
// position and rank. Free agents and other out-of-range teams are ignored.
func (b *Builder) Build(players []model.Player) (Result, error) {
	rosters := make(map[int][]*model.Player)
	for i := range players {
		p := &players[i]
		if p.Rostered() {
			rosters[p.TGID] = append(rosters[p.TGID], p)
		}
	}

	var (
		res  Result
		errs []error
	)
	for _, tgid := range slices.Sorted(maps.Keys(rosters)) {
		roster := rosters[tgid]
		res.Entries = append(res.Entries, b.ranked(tgid, roster)...)

		for _, s := range specialists {
			p := s.pick(roster)
			if p == nil {
				res.Vacancies = append(res.Vacancies, Vacancy{TGID: tgid, Ppos: s.pos})
				if s.pos == model.KR {
					res.Vacancies = append(res.Vacancies, Vacancy{TGID: tgid, Ppos: model.PR})
				}
				if s.pos == model.LS && b.strictLongSnapper {
					errs = append(errs, fmt.Errorf("%w: team %d has no tight end", ErrNoLongSnapper, tgid))
				}
				continue
			}
			res.Entries = append(res.Entries, model.DepthEntry{TGID: tgid, PGID: p.PGID, Ppos: s.pos})
			if s.pos == model.KR {
				res.Entries = append(res.Entries, model.DepthEntry{TGID: tgid, PGID: p.PGID, Ppos: model.PR})
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Result{}, err
	}

	model.SortDepth(res.Entries)
	return res, nil
}

// ranked fills positions 0-18 of one team. Ranks are dense from 0 and the
// capacity cut only drops the tail.
func (b *Builder) ranked(tgid int, roster []*model.Player) []model.DepthEntry {
	byPos := make(map[model.Position][]*model.Player)
	for _, p := range roster {
		if p.Ppos >= model.MinPosition && p.Ppos <= model.MaxRankedPosition {
			byPos[p.Ppos] = append(byPos[p.Ppos], p)
		}
	}

	var out []model.DepthEntry
	for pos := model.MinPosition; pos <= model.MaxRankedPosition; pos++ {
		group := byPos[pos]
		slices.SortStableFunc(group, compareRank)
		limit := min(len(group), b.capacities.Of(pos))
		for rank, p := range group[:limit] {
			out = append(out, model.DepthEntry{TGID: tgid, PGID: p.PGID, Ppos: pos, Depth: rank})
		}
	}
	return out
}

// compareRank orders by overall, awareness and speed, all descending.
func compareRank(a, b *model.Player) int {
	return cmp.Or(
		desc(a.Overall, b.Overall),
		desc(a.Attr(model.AttrAwareness), b.Attr(model.AttrAwareness)),
		desc(a.Attr(model.AttrSpeed), b.Attr(model.AttrSpeed)),
		cmp.Compare(a.PGID, b.PGID),
	)
}
