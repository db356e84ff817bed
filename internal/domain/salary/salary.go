// Package salary fills in contracts for rostered players without one and
// clears contracts held by free agents.
package salary

import (
	"fmt"
	"math"

	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/reference"
)

// Summary counts what an assignment pass changed.
type Summary struct {
	FreeAgentsCleared int
	Assigned          int
	Table             reference.SalaryTable
}

// Assigner computes contracts from the salary reference table.
type Assigner struct {
	years   int
	minimum reference.MinimumSalary
}

// NewAssigner creates an assigner with a 3 year contract and the default
// minimum salary schedule.
func NewAssigner(opts ...Option) *Assigner {
	a := &Assigner{
		years:   DefaultContractYears,
		minimum: reference.MinimumSalarySchedule(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Years is the contract length used for new contracts.
func (a *Assigner) Years() int { return a.years }

// Assign returns a copy of players where free agents hold no contract and
// every rostered player without a base salary has one. The reference table
// is built after free agents are cleared.
func (a *Assigner) Assign(players []model.Player) ([]model.Player, Summary, error) {
	out := model.ClonePlayers(players)
	var sum Summary
	for i := range out {
		if out[i].FreeAgent() {
			if clearContract(&out[i]) {
				sum.FreeAgentsCleared++
			}
		}
	}

	sum.Table = reference.BuildSalaryTable(out)
	for i := range out {
		p := &out[i]
		if !p.Rostered() || p.Salary > 0 {
			continue
		}
		if err := a.contract(p, sum.Table); err != nil {
			return nil, Summary{}, fmt.Errorf("assign salary for player %d: %w", p.PGID, err)
		}
		sum.Assigned++
	}
	return out, sum, nil
}

// contract writes a new contract. An undefined reference salary falls back
// to the minimum, an undefined bonus to zero.
func (a *Assigner) contract(p *model.Player, table reference.SalaryTable) error {
	row, err := table.Lookup(p.Ppos, reference.Decile(p.Overall))
	if err != nil {
		return err
	}
	floor, err := a.minimum.Floor(p.YearsPro)
	if err != nil {
		return err
	}

	yearly := float64(floor)
	if row.HasSalary() {
		yearly = math.Max(row.SalaryAdj, yearly)
	}
	var bonus float64
	if row.HasBonus() {
		bonus = row.BonusAdj
	}

	base := a.years * int(yearly)
	total := a.years * int(bonus)
	p.Salary, p.VestedSalary = base, base
	p.Bonus, p.VestedBonus = total, total
	p.ContractYears, p.VestedYears, p.ContractLeft = a.years, a.years, a.years
	p.YearsWithTeam = 0
	return nil
}

// clearContract zeroes every contract field, reporting whether any was set.
func clearContract(p *model.Player) bool {
	changed := p.Salary != 0 || p.VestedSalary != 0 || p.Bonus != 0 || p.VestedBonus != 0 ||
		p.ContractYears != 0 || p.VestedYears != 0 || p.ContractLeft != 0
	p.Salary, p.VestedSalary, p.Bonus, p.VestedBonus = 0, 0, 0, 0
	p.ContractYears, p.VestedYears, p.ContractLeft = 0, 0, 0
	return changed
}
