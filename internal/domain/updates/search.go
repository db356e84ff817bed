package updates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/reference"
)

// FreeAgentLabel names the free-agent pool in search results.
const FreeAgentLabel = "FA"

// Match is a player found by name.
type Match struct {
	Player   model.Player
	Position string
	Team     string
}

// FindPlayer looks players up by "first last" or by last name alone,
// case-insensitively.
func FindPlayer(name string, players []model.Player, positions reference.PositionMap, teams reference.TeamMap) ([]Match, error) {
	first, last, full := strings.Cut(strings.ToLower(strings.TrimSpace(name)), " ")
	if !full {
		last = first
	}
	last = strings.TrimSpace(last)

	var out []Match
	for i := range players {
		p := &players[i]
		if strings.ToLower(p.LastName) != last {
			continue
		}
		if full && strings.ToLower(p.FirstName) != first {
			continue
		}
		pos, err := positions.Label(p.Ppos)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", p.PGID, err)
		}
		team, err := teams.Name(p.TGID)
		switch {
		case errors.Is(err, reference.ErrUnknownTeam) && p.FreeAgent():
			team = FreeAgentLabel
		case err != nil:
			return nil, fmt.Errorf("player %d: %w", p.PGID, err)
		}
		out = append(out, Match{Player: p.Clone(), Position: pos, Team: team})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, name)
	}
	return out, nil
}
