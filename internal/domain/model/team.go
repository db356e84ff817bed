package model

import "maps"

// Team is one TEAM row. Only the id and short name are interpreted; the
// remaining cells pass through unchanged.
type Team struct {
	TGID   int
	Name   string // tsna
	Fields map[string]string
}

// Clone returns a deep copy.
func (t Team) Clone() Team {
	t.Fields = maps.Clone(t.Fields)
	return t
}

// Injury is one INJY row keyed by team and player.
type Injury struct {
	TGID   int
	PGID   int
	Fields map[string]string
}

// Clone returns a deep copy.
func (i Injury) Clone() Injury {
	i.Fields = maps.Clone(i.Fields)
	return i
}

// DepthEntry is one DCHT row. Depth is the zero-based rank, 0 is the starter.
type DepthEntry struct {
	TGID  int
	PGID  int
	Ppos  Position
	Depth int
}
