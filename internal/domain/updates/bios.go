// Package updates applies external update feeds to the PLAY and INJY
// tables: bio corrections, roster additions and deletions, transactions and
// rating overrides. Every function returns new tables and leaves its input
// untouched.
package updates

import (
	"fmt"

	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/reference"
)

// BioUpdate corrects the name of a player identified by team short name and
// current name. Empty new values keep the current one.
type BioUpdate struct {
	Team         string
	FirstName    string
	LastName     string
	NewFirstName string
	NewLastName  string
}

type bioKey struct {
	tgid        int
	first, last string
}

// UpdateBios applies name corrections. The first update for a player wins.
func UpdateBios(players []model.Player, feed []BioUpdate, teams reference.TeamMap) ([]model.Player, int, error) {
	byKey := make(map[bioKey]BioUpdate, len(feed))
	for _, u := range feed {
		tgid, err := teams.ID(u.Team)
		if err != nil {
			return nil, 0, fmt.Errorf("bio update for %s %s: %w", u.FirstName, u.LastName, err)
		}
		k := bioKey{tgid: tgid, first: u.FirstName, last: u.LastName}
		if _, ok := byKey[k]; !ok {
			byKey[k] = u
		}
	}

	out := model.ClonePlayers(players)
	n := 0
	for i := range out {
		p := &out[i]
		u, ok := byKey[bioKey{tgid: p.TGID, first: p.FirstName, last: p.LastName}]
		if !ok {
			continue
		}
		if u.NewFirstName != "" {
			p.FirstName = u.NewFirstName
		}
		if u.NewLastName != "" {
			p.LastName = u.NewLastName
		}
		n++
	}
	return out, n, nil
}
