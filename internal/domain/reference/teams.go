package reference

import (
	"fmt"

	"github.com/okian/rostra/internal/domain/model"
)

// TeamMap maps team ids to short names and back.
type TeamMap struct {
	names map[int]string
	ids   map[string]int
}

// NewTeamMap derives the map from the TEAM table. Repeated (id, name) pairs
// collapse; when an id or a name repeats with a different partner the last
// row wins.
func NewTeamMap(teams []model.Team) TeamMap {
	m := TeamMap{names: make(map[int]string, len(teams)), ids: make(map[string]int, len(teams))}
	for _, t := range teams {
		m.names[t.TGID] = t.Name
		m.ids[t.Name] = t.TGID
	}
	return m
}

// Name returns the short name of a team.
func (m TeamMap) Name(tgid int) (string, error) {
	n, ok := m.names[tgid]
	if !ok {
		return "", fmt.Errorf("%w: id %d", ErrUnknownTeam, tgid)
	}
	return n, nil
}

// ID returns the id of a team by short name.
func (m TeamMap) ID(name string) (int, error) {
	id, ok := m.ids[name]
	if !ok {
		return 0, fmt.Errorf("%w: name %q", ErrUnknownTeam, name)
	}
	return id, nil
}

// Len is the number of distinct team ids.
func (m TeamMap) Len() int { return len(m.names) }
