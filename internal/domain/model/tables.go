package model

import (
	"cmp"
	"slices"
)

// Tables is one snapshot of the four save tables.
type Tables struct {
	Players  []Player
	Teams    []Team
	Depth    []DepthEntry
	Injuries []Injury
}

// Clone deep-copies every table so the copy can be changed freely.
func (t Tables) Clone() Tables {
	out := Tables{
		Players: ClonePlayers(t.Players),
		Depth:   slices.Clone(t.Depth),
	}
	if t.Teams != nil {
		out.Teams = make([]Team, len(t.Teams))
		for i := range t.Teams {
			out.Teams[i] = t.Teams[i].Clone()
		}
	}
	if t.Injuries != nil {
		out.Injuries = make([]Injury, len(t.Injuries))
		for i := range t.Injuries {
			out.Injuries[i] = t.Injuries[i].Clone()
		}
	}
	return out
}

// SortPlayers orders players by team, position, then id.
func SortPlayers(ps []Player) {
	slices.SortStableFunc(ps, func(a, b Player) int {
		return cmp.Or(
			cmp.Compare(a.TGID, b.TGID),
			cmp.Compare(a.Ppos, b.Ppos),
			cmp.Compare(a.PGID, b.PGID),
		)
	})
}

// SortTeams orders teams by id.
func SortTeams(ts []Team) {
	slices.SortStableFunc(ts, func(a, b Team) int { return cmp.Compare(a.TGID, b.TGID) })
}

// SortDepth orders depth entries by team, position, then rank.
func SortDepth(ds []DepthEntry) {
	slices.SortStableFunc(ds, func(a, b DepthEntry) int {
		return cmp.Or(
			cmp.Compare(a.TGID, b.TGID),
			cmp.Compare(a.Ppos, b.Ppos),
			cmp.Compare(a.Depth, b.Depth),
		)
	})
}

// SortInjuries orders injuries by team, then player.
func SortInjuries(is []Injury) {
	slices.SortStableFunc(is, func(a, b Injury) int {
		return cmp.Or(cmp.Compare(a.TGID, b.TGID), cmp.Compare(a.PGID, b.PGID))
	})
}
