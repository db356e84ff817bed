// Package model contains domain models passed between layers.
package model

import (
	"maps"
	"strings"
)

// Team id conventions of the save format.
const (
	MinTeamID     = 1
	MaxTeamID     = 32
	FreeAgentTeam = 1009
	TeamCount     = MaxTeamID - MinTeamID + 1
)

// IsRostered reports whether tgid is one of the 32 real teams.
func IsRostered(tgid int) bool { return tgid >= MinTeamID && tgid <= MaxTeamID }

// Core PLAY column names.
const (
	ColPGID          = "pgid"
	ColPOID          = "poid"
	ColFirstName     = "pfna"
	ColLastName      = "plna"
	ColPosition      = "ppos"
	ColPositionCopy  = "pops"
	ColTeam          = "tgid"
	ColOverall       = "povr"
	ColJersey        = "pjen"
	ColSalary        = "ptsa"
	ColVestedSalary  = "pvts"
	ColBonus         = "psbo"
	ColVestedBonus   = "pvsb"
	ColContract      = "pcon"
	ColVestedYears   = "pvco"
	ColContractLeft  = "pcyl"
	ColYearsPro      = "pyrp"
	ColYearsWithTeam = "pywt"
	ColPrevTeam      = "ppti"
	ColImportance    = "pimp"
)

// Attribute columns the engine reads directly.
const (
	AttrAwareness     = "pawr"
	AttrSpeed         = "pspd"
	AttrKickReturn    = "pkrt"
	AttrBreakTackle   = "pbtk"
	AttrCatching      = "pcth"
	AttrHeight        = "phgt"
	DepthColumn       = "ddep"
	TeamNameColumn    = "tsna"
	FirstNameUpdate   = "pfna_upd"
	LastNameUpdate    = "plna_upd"
	FromTeamColumn    = "tgid_fr"
	ToTeamColumn      = "tgid_to"
	TransactionColumn = "tx"
)

// SalaryColumns are the contract fields cleared for free agents.
var SalaryColumns = []string{ColSalary, ColVestedSalary, ColBonus, ColVestedBonus, ColContract, ColVestedYears, ColContractLeft}

// Player is one PLAY row. Columns the engine works with are typed fields;
// every other numeric column lives in Attrs. A missing attribute cell is an
// absent key.
type Player struct {
	PGID      int
	POID      int
	FirstName string
	LastName  string
	Ppos      Position
	Pops      Position
	TGID      int
	Overall   int
	Jersey    int

	Salary        int
	VestedSalary  int
	Bonus         int
	VestedBonus   int
	ContractYears int
	VestedYears   int
	ContractLeft  int
	YearsPro      int
	YearsWithTeam int
	PrevTeam      int
	Importance    int

	Attrs map[string]int
}

type intField struct {
	get func(*Player) int
	set func(*Player, int)
}

var intFields = map[string]intField{
	ColPGID:          {func(p *Player) int { return p.PGID }, func(p *Player, v int) { p.PGID = v }},
	ColPOID:          {func(p *Player) int { return p.POID }, func(p *Player, v int) { p.POID = v }},
	ColPosition:      {func(p *Player) int { return int(p.Ppos) }, func(p *Player, v int) { p.Ppos = Position(v) }},
	ColPositionCopy:  {func(p *Player) int { return int(p.Pops) }, func(p *Player, v int) { p.Pops = Position(v) }},
	ColTeam:          {func(p *Player) int { return p.TGID }, func(p *Player, v int) { p.TGID = v }},
	ColOverall:       {func(p *Player) int { return p.Overall }, func(p *Player, v int) { p.Overall = v }},
	ColJersey:        {func(p *Player) int { return p.Jersey }, func(p *Player, v int) { p.Jersey = v }},
	ColSalary:        {func(p *Player) int { return p.Salary }, func(p *Player, v int) { p.Salary = v }},
	ColVestedSalary:  {func(p *Player) int { return p.VestedSalary }, func(p *Player, v int) { p.VestedSalary = v }},
	ColBonus:         {func(p *Player) int { return p.Bonus }, func(p *Player, v int) { p.Bonus = v }},
	ColVestedBonus:   {func(p *Player) int { return p.VestedBonus }, func(p *Player, v int) { p.VestedBonus = v }},
	ColContract:      {func(p *Player) int { return p.ContractYears }, func(p *Player, v int) { p.ContractYears = v }},
	ColVestedYears:   {func(p *Player) int { return p.VestedYears }, func(p *Player, v int) { p.VestedYears = v }},
	ColContractLeft:  {func(p *Player) int { return p.ContractLeft }, func(p *Player, v int) { p.ContractLeft = v }},
	ColYearsPro:      {func(p *Player) int { return p.YearsPro }, func(p *Player, v int) { p.YearsPro = v }},
	ColYearsWithTeam: {func(p *Player) int { return p.YearsWithTeam }, func(p *Player, v int) { p.YearsWithTeam = v }},
	ColPrevTeam:      {func(p *Player) int { return p.PrevTeam }, func(p *Player, v int) { p.PrevTeam = v }},
	ColImportance:    {func(p *Player) int { return p.Importance }, func(p *Player, v int) { p.Importance = v }},
}

// RequiredPlayerColumns must be present in every PLAY table.
var RequiredPlayerColumns = []string{ColPGID, ColFirstName, ColLastName, ColPosition, ColTeam, ColOverall}

// IsCoreColumn reports whether col maps to a typed Player field.
func IsCoreColumn(col string) bool {
	if col == ColFirstName || col == ColLastName {
		return true
	}
	_, ok := intFields[col]
	return ok
}

// IsStringColumn reports whether col holds text rather than a number.
func IsStringColumn(col string) bool { return col == ColFirstName || col == ColLastName }

// Value returns the numeric value of col. Core columns are always present;
// attributes report false when missing.
func (p *Player) Value(col string) (int, bool) {
	if f, ok := intFields[col]; ok {
		return f.get(p), true
	}
	v, ok := p.Attrs[col]
	return v, ok
}

// SetValue writes a numeric column, typed field or attribute.
func (p *Player) SetValue(col string, v int) {
	if f, ok := intFields[col]; ok {
		f.set(p, v)
		return
	}
	if p.Attrs == nil {
		p.Attrs = make(map[string]int)
	}
	p.Attrs[col] = v
}

// Attr returns an attribute, or zero when it is missing.
func (p *Player) Attr(col string) int {
	v, _ := p.Value(col)
	return v
}

// FullName is "First Last".
func (p *Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Rostered reports whether the player belongs to one of the 32 teams.
func (p *Player) Rostered() bool { return IsRostered(p.TGID) }

// FreeAgent reports whether the player is in the free-agent pool.
func (p *Player) FreeAgent() bool { return p.TGID == FreeAgentTeam }

// Clone returns a deep copy.
func (p Player) Clone() Player {
	p.Attrs = maps.Clone(p.Attrs)
	return p
}

// ClonePlayers deep-copies a player slice.
func ClonePlayers(in []Player) []Player {
	if in == nil {
		return nil
	}
	out := make([]Player, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
