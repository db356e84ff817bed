package model

// Position is the game's integer position code (ppos).
type Position int

// Position codes 0-18 are roster positions, 19-20 kicking positions and
// 21-25 depth-chart-only specialist slots.
const (
	QB Position = iota
	HB
	FB
	WR
	TE
	LT
	LG
	C
	RG
	RT
	LE
	RE
	DT
	LOLB
	MLB
	ROLB
	CB
	FS
	SS
	K
	P
	KR
	PR
	KOS
	LS
	ThirdDownBack
)

// Position code bounds.
const (
	MinPosition       = QB
	MaxPosition       = ThirdDownBack
	MaxRankedPosition = SS // last position filled by rank
	MaxRosterPosition = P  // last position a player can be listed at
)

// Valid reports whether p is a known position code.
func (p Position) Valid() bool { return p >= MinPosition && p <= MaxPosition }

// Rosterable reports whether a player can be listed at p (0-20).
func (p Position) Rosterable() bool { return p >= MinPosition && p <= MaxRosterPosition }
