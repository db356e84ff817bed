// Package validate runs read-only consistency checks over a table set.
// Findings are logged and returned; they never fail the caller.
package validate

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/scoring"
	"github.com/okian/rostra/pkg/logger"
)

// Validator checks a snapshot for anomalies.
type Validator struct {
	ranges          map[string]model.Range
	columns         []string
	ratings         *scoring.RatingModel
	rosterSize      int
	rosterTolerance int
	maxDeviation    int
	log             logger.Logger
}

// NewValidator creates a validator with default thresholds. Range and rating
// checks are skipped until ranges and a rating model are supplied.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		rosterSize:      DefaultRosterSize,
		rosterTolerance: DefaultRosterTolerance,
		maxDeviation:    DefaultMaxDeviation,
		log:             logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run executes every check and logs a summary per check.
func (v *Validator) Run(ctx context.Context, t model.Tables) Report {
	var r Report
	players := t.Players

	r.add(duplicates(CheckDuplicatePGID, players, func(p *model.Player) (int, bool) {
		return p.PGID, true
	}, func(id int) string { return fmt.Sprintf("pgid %d", id) }))
	r.add(duplicates(CheckDuplicatePOID, players, func(p *model.Player) (int, bool) {
		return p.POID, true
	}, func(id int) string { return fmt.Sprintf("poid %d", id) }))
	r.add(duplicates(CheckDuplicateName, players, func(p *model.Player) (nameKey, bool) {
		return nameKey{first: p.FirstName, last: p.LastName, pos: p.Ppos}, true
	}, nameKey.String))
	r.add(duplicates(CheckDuplicateJersey, players, func(p *model.Player) (jerseyKey, bool) {
		return jerseyKey{team: p.TGID, jersey: p.Jersey}, p.Rostered()
	}, jerseyKey.String))
	r.add(positions(players))
	r.add(v.missing(t))
	r.add(v.outOfRange(players))
	r.add(v.deviations(players))
	r.add(freeAgentSalaries(players))
	r.add(unpaid(players))
	r.add(emptyPositions(players))
	r.add(v.rosterSizes(players))

	for _, c := range Checks {
		if n := r.Count(c); n > 0 {
			v.log.Warn(ctx, "validation findings", logger.String("check", string(c)), logger.Int("count", n))
		}
	}
	if r.OK() {
		v.log.Info(ctx, "validation passed")
	}
	return r
}

func (r *Report) add(fs []Finding) { r.Findings = append(r.Findings, fs...) }

// nameKey identifies a player by name and position.
type nameKey struct {
	first, last string
	pos         model.Position
}

func (k nameKey) String() string {
	return fmt.Sprintf("%s %s at position %d", k.first, k.last, k.pos)
}

type jerseyKey struct {
	team, jersey int
}

func (k jerseyKey) String() string { return fmt.Sprintf("team %d jersey %d", k.team, k.jersey) }

// duplicates groups players by key and reports every key with more than one
// player. Players for which key returns false are skipped.
func duplicates[K comparable](c Check, players []model.Player, key func(*model.Player) (K, bool), describe func(K) string) []Finding {
	groups := make(map[K][]int)
	var order []K
	for i := range players {
		k, ok := key(&players[i])
		if !ok {
			continue
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], players[i].PGID)
	}
	var out []Finding
	for _, k := range order {
		if ids := groups[k]; len(ids) > 1 {
			out = append(out, Finding{Check: c, Message: fmt.Sprintf("%s shared by players %s", describe(k), joinInts(ids)), Subjects: ids})
		}
	}
	return out
}

func positions(players []model.Player) []Finding {
	var out []Finding
	for i := range players {
		p := &players[i]
		switch {
		case !p.Ppos.Rosterable():
			out = append(out, Finding{Check: CheckPosition, Message: fmt.Sprintf("player %d has position %d outside 0-20", p.PGID, p.Ppos), Subjects: []int{p.PGID}})
		case p.Pops != p.Ppos:
			out = append(out, Finding{Check: CheckPosition, Message: fmt.Sprintf("player %d pops %d differs from ppos %d", p.PGID, p.Pops, p.Ppos), Subjects: []int{p.PGID}})
		}
	}
	return out
}

// missing reports, per column, the players with an empty cell. Only text
// columns and attributes can be empty; typed numeric columns always hold a
// value once loaded.
func (v *Validator) missing(t model.Tables) []Finding {
	var out []Finding
	for _, col := range v.columns {
		var ids []int
		for i := range t.Players {
			p := &t.Players[i]
			switch {
			case col == model.ColFirstName:
				if strings.TrimSpace(p.FirstName) == "" {
					ids = append(ids, p.PGID)
				}
			case col == model.ColLastName:
				if strings.TrimSpace(p.LastName) == "" {
					ids = append(ids, p.PGID)
				}
			default:
				if _, ok := p.Value(col); !ok {
					ids = append(ids, p.PGID)
				}
			}
		}
		if len(ids) > 0 {
			out = append(out, Finding{Check: CheckMissingValues, Message: fmt.Sprintf("column %s missing for %d players", col, len(ids)), Subjects: ids})
		}
	}
	var teams []int
	for _, tm := range t.Teams {
		if strings.TrimSpace(tm.Name) == "" {
			teams = append(teams, tm.TGID)
		}
	}
	if len(teams) > 0 {
		out = append(out, Finding{Check: CheckMissingValues, Message: fmt.Sprintf("team name missing for teams %s", joinInts(teams)), Subjects: teams})
	}
	return out
}

func (v *Validator) outOfRange(players []model.Player) []Finding {
	var out []Finding
	for _, col := range slices.Sorted(maps.Keys(v.ranges)) {
		rg := v.ranges[col]
		var ids []int
		for i := range players {
			if val, ok := players[i].Value(col); ok && !rg.Contains(val) {
				ids = append(ids, players[i].PGID)
			}
		}
		if len(ids) > 0 {
			out = append(out, Finding{Check: CheckRange, Message: fmt.Sprintf("column %s outside %s for players %s", col, rg, joinInts(ids)), Subjects: ids})
		}
	}
	return out
}

func (v *Validator) deviations(players []model.Player) []Finding {
	if v.ratings == nil {
		return nil
	}
	var out []Finding
	for i := range players {
		p := &players[i]
		pred, err := v.ratings.PredictOverall(p)
		if err != nil {
			out = append(out, Finding{Check: CheckRatingDeviation, Message: fmt.Sprintf("player %d cannot be scored: %v", p.PGID, err), Subjects: []int{p.PGID}})
			continue
		}
		if d := abs(p.Overall - pred); d >= v.maxDeviation {
			out = append(out, Finding{Check: CheckRatingDeviation, Message: fmt.Sprintf("player %d overall %d predicted %d", p.PGID, p.Overall, pred), Subjects: []int{p.PGID}})
		}
	}
	return out
}

func freeAgentSalaries(players []model.Player) []Finding {
	var ids []int
	for i := range players {
		p := &players[i]
		if !p.FreeAgent() {
			continue
		}
		for _, col := range model.SalaryColumns {
			if v, _ := p.Value(col); v != 0 {
				ids = append(ids, p.PGID)
				break
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return []Finding{{Check: CheckFreeAgentSalary, Message: fmt.Sprintf("free agents with a contract: %s", joinInts(ids)), Subjects: ids}}
}

func unpaid(players []model.Player) []Finding {
	var ids []int
	for i := range players {
		p := &players[i]
		if p.Rostered() && (p.Salary == 0 || p.VestedSalary == 0 || p.ContractYears == 0 || p.VestedYears == 0) {
			ids = append(ids, p.PGID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return []Finding{{Check: CheckRosteredNoSalary, Message: fmt.Sprintf("rostered players without a contract: %s", joinInts(ids)), Subjects: ids}}
}

func emptyPositions(players []model.Player) []Finding {
	type key struct {
		tgid int
		pos  model.Position
	}
	seen := make(map[key]bool)
	for i := range players {
		seen[key{players[i].TGID, players[i].Ppos}] = true
	}
	var out []Finding
	for tgid := model.MinTeamID; tgid <= model.MaxTeamID; tgid++ {
		for pos := model.MinPosition; pos <= model.MaxRosterPosition; pos++ {
			if !seen[key{tgid, pos}] {
				out = append(out, Finding{Check: CheckEmptyPosition, Message: fmt.Sprintf("team %d has no player at position %d", tgid, pos), Subjects: []int{tgid}})
			}
		}
	}
	return out
}

func (v *Validator) rosterSizes(players []model.Player) []Finding {
	var counts [model.MaxTeamID + 1]int
	for i := range players {
		if players[i].Rostered() {
			counts[players[i].TGID]++
		}
	}
	var out []Finding
	for tgid := model.MinTeamID; tgid <= model.MaxTeamID; tgid++ {
		if abs(counts[tgid]-v.rosterSize) > v.rosterTolerance {
			out = append(out, Finding{Check: CheckRosterSize, Message: fmt.Sprintf("team %d has %d players, expected %d±%d", tgid, counts[tgid], v.rosterSize, v.rosterTolerance), Subjects: []int{tgid}})
		}
	}
	return out
}

func joinInts(xs []int) string {
	s := make([]string, len(xs))
	for i, x := range xs {
		s[i] = fmt.Sprint(x)
	}
	return strings.Join(s, ",")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
