package reference

import (
	"fmt"
	"math"
	"slices"

	"github.com/okian/rostra/internal/domain/model"
)

// Salary reference grid bounds: positions 0-20, rating deciles 0-9.
const (
	SalaryDeciles = 10

	fixedDecile         = 5
	fixedDecileSalary   = 30
	fixedDecileBonus    = 1
	lowDecileSalary     = 20
	lowDecileBonus      = 0
	decileSixBonus      = 4
	decileSevenBonus    = 7
	maxServiceYears     = 25
	minimumSalaryCap    = 75
	minimumSalaryLength = maxServiceYears + 1
)

// SalaryKey addresses one salary reference row.
type SalaryKey struct {
	Ppos   model.Position
	Decile int
}

// SalaryRow holds yearly salary and bonus statistics for one position and
// rating decile. Statistics of an empty group are NaN.
type SalaryRow struct {
	SalaryKey
	Count      int
	SalaryMed  float64
	SalaryMean float64
	BonusMed   float64
	BonusMean  float64
	SalaryAdj  float64
	BonusAdj   float64
}

// HasSalary reports whether the adjusted salary is defined.
func (r SalaryRow) HasSalary() bool { return !math.IsNaN(r.SalaryAdj) }

// HasBonus reports whether the adjusted bonus is defined.
func (r SalaryRow) HasBonus() bool { return !math.IsNaN(r.BonusAdj) }

// SalaryTable is the full position x decile grid.
type SalaryTable struct {
	rows map[SalaryKey]SalaryRow
}

// Decile buckets an overall rating, floor(povr/10).
func Decile(overall int) int {
	return int(math.Floor(float64(overall) / 10))
}

// BuildSalaryTable derives yearly salary references from rostered players
// with a contract. Every (position, decile) pair of the grid is present.
func BuildSalaryTable(players []model.Player) SalaryTable {
	type sample struct{ salary, bonus []float64 }
	groups := make(map[SalaryKey]*sample)
	for i := range players {
		p := &players[i]
		if !p.Rostered() || p.ContractYears <= 0 {
			continue
		}
		k := SalaryKey{Ppos: p.Ppos, Decile: Decile(p.Overall)}
		g, ok := groups[k]
		if !ok {
			g = &sample{}
			groups[k] = g
		}
		years := float64(p.ContractYears)
		g.salary = append(g.salary, float64(p.Salary)/years)
		g.bonus = append(g.bonus, float64(p.Bonus)/years)
	}

	t := SalaryTable{rows: make(map[SalaryKey]SalaryRow, int(model.MaxRosterPosition+1)*SalaryDeciles)}
	for pos := model.MinPosition; pos <= model.MaxRosterPosition; pos++ {
		for d := 0; d < SalaryDeciles; d++ {
			k := SalaryKey{Ppos: pos, Decile: d}
			row := SalaryRow{
				SalaryKey:  k,
				SalaryMed:  math.NaN(),
				SalaryMean: math.NaN(),
				BonusMed:   math.NaN(),
				BonusMean:  math.NaN(),
			}
			if g, ok := groups[k]; ok {
				row.Count = len(g.salary)
				row.SalaryMed = median(g.salary)
				row.SalaryMean = mean(g.salary)
				row.BonusMed = median(g.bonus)
				row.BonusMean = mean(g.bonus)
			}
			adjust(&row)
			t.rows[k] = row
		}
	}
	return t
}

// adjust overlays the fixed salary policy on the observed medians.
func adjust(r *SalaryRow) {
	r.SalaryAdj = math.Ceil(r.SalaryMed)
	r.BonusAdj = math.Ceil(r.BonusMed)
	switch {
	case r.Decile < fixedDecile:
		r.SalaryAdj = lowDecileSalary
		r.BonusAdj = lowDecileBonus
	case r.Decile == fixedDecile:
		r.SalaryAdj = fixedDecileSalary
		r.BonusAdj = fixedDecileBonus
	case r.Decile == 6:
		r.BonusAdj = decileSixBonus
	case r.Decile == 7:
		r.BonusAdj = decileSevenBonus
	}
}

// Lookup returns the row for a position and decile.
func (t SalaryTable) Lookup(pos model.Position, decile int) (SalaryRow, error) {
	r, ok := t.rows[SalaryKey{Ppos: pos, Decile: decile}]
	if !ok {
		return SalaryRow{}, fmt.Errorf("%w: salary for position %d decile %d", ErrLookupMiss, pos, decile)
	}
	return r, nil
}

// Rows returns every row ordered by position, then decile.
func (t SalaryTable) Rows() []SalaryRow {
	out := make([]SalaryRow, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b SalaryRow) int {
		if a.Ppos != b.Ppos {
			return int(a.Ppos - b.Ppos)
		}
		return a.Decile - b.Decile
	})
	return out
}

// MinimumSalary is the floor base salary by years of service.
type MinimumSalary [minimumSalaryLength]int

// MinimumSalarySchedule returns the fixed schedule for 0-25 years of service.
func MinimumSalarySchedule() MinimumSalary {
	s := MinimumSalary{20, 30, 40, 45, 55, 55, 55, 65, 65, 65, 75}
	for y := 11; y < minimumSalaryLength; y++ {
		s[y] = minimumSalaryCap
	}
	return s
}

// Floor returns the minimum salary for years of service. Tenure past the
// end of the schedule uses its last value.
func (s MinimumSalary) Floor(years int) (int, error) {
	if years < 0 {
		return 0, fmt.Errorf("%w: minimum salary for %d years", ErrLookupMiss, years)
	}
	if years > maxServiceYears {
		years = maxServiceYears
	}
	return s[years], nil
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	s := slices.Clone(xs)
	slices.Sort(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
