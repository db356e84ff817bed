package updates

import (
	"strings"

	"github.com/okian/rostra/internal/domain/model"
)

// Additions are PLAY rows to append, with the columns they were read with.
type Additions struct {
	Columns []string
	Players []model.Player
}

// AddPlayers appends additions and restores the PLAY sort order. The
// additions must have exactly the columns of target, in order.
func AddPlayers(players []model.Player, target model.Schema, add Additions) ([]model.Player, error) {
	if !target.SameColumns(add.Columns) {
		return nil, model.SchemaMismatch(target.Table, target.Columns, add.Columns)
	}
	out := make([]model.Player, 0, len(players)+len(add.Players))
	out = append(out, model.ClonePlayers(players)...)
	out = append(out, model.ClonePlayers(add.Players)...)
	model.SortPlayers(out)
	return out, nil
}

// Deletion removes a player matched by id and name.
type Deletion struct {
	PGID      int
	FirstName string
	LastName  string
}

type deletionKey struct {
	pgid        int
	first, last string
}

func normName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// DropPlayers removes every player whose id and case-insensitive names
// match a deletion. It returns the remaining players and how many were
// removed.
func DropPlayers(players []model.Player, feed []Deletion) ([]model.Player, int) {
	drop := make(map[deletionKey]struct{}, len(feed))
	for _, d := range feed {
		drop[deletionKey{d.PGID, normName(d.FirstName), normName(d.LastName)}] = struct{}{}
	}
	out := make([]model.Player, 0, len(players))
	for i := range players {
		p := &players[i]
		if _, ok := drop[deletionKey{p.PGID, normName(p.FirstName), normName(p.LastName)}]; ok {
			continue
		}
		out = append(out, p.Clone())
	}
	return out, len(players) - len(out)
}

// ClearInjuries returns an empty INJY table.
func ClearInjuries([]model.Injury) []model.Injury { return []model.Injury{} }
