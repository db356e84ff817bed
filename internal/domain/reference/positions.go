// Package reference builds the lookup tables the roster transforms read:
// position and team maps, depth capacities, salary references and the
// minimum salary schedule. Everything here is immutable once built.
package reference

import (
	"fmt"
	"strings"

	"github.com/okian/rostra/internal/domain/model"
)

var positionLabels = [...]string{
	model.QB: "QB", model.HB: "HB", model.FB: "FB", model.WR: "WR", model.TE: "TE",
	model.LT: "LT", model.LG: "LG", model.C: "C", model.RG: "RG", model.RT: "RT",
	model.LE: "LE", model.RE: "RE", model.DT: "DT", model.LOLB: "LOLB", model.MLB: "MLB",
	model.ROLB: "ROLB", model.CB: "CB", model.FS: "FS", model.SS: "SS",
	model.K: "K", model.P: "P", model.KR: "KR", model.PR: "PR", model.KOS: "KOS",
	model.LS: "LS", model.ThirdDownBack: "3DRB",
}

// PositionMap maps position codes to labels and back.
type PositionMap struct {
	byLabel map[string]model.Position
}

// Positions returns the fixed position map.
func Positions() PositionMap {
	m := PositionMap{byLabel: make(map[string]model.Position, len(positionLabels))}
	for code, label := range positionLabels {
		m.byLabel[label] = model.Position(code)
	}
	return m
}

// Label returns the short label for a code, e.g. 0 -> "QB".
func (m PositionMap) Label(p model.Position) (string, error) {
	if !p.Valid() {
		return "", fmt.Errorf("%w: code %d", ErrUnknownPosition, p)
	}
	return positionLabels[p], nil
}

// Code returns the code for a label, case-insensitively.
func (m PositionMap) Code(label string) (model.Position, error) {
	p, ok := m.byLabel[strings.ToUpper(strings.TrimSpace(label))]
	if !ok {
		return 0, fmt.Errorf("%w: label %q", ErrUnknownPosition, label)
	}
	return p, nil
}

// Capacities is the maximum number of depth chart slots per position.
type Capacities [model.MaxPosition + 1]int

// DefaultCapacities returns the game's depth chart limits.
func DefaultCapacities() Capacities {
	return Capacities{
		model.QB: 3, model.HB: 4, model.FB: 2, model.WR: 6, model.TE: 3,
		model.LT: 3, model.LG: 3, model.C: 3, model.RG: 3, model.RT: 3,
		model.LE: 3, model.RE: 3, model.DT: 5,
		model.LOLB: 3, model.MLB: 4, model.ROLB: 3,
		model.CB: 5, model.FS: 3, model.SS: 3,
		model.K: 2, model.P: 2,
		model.KR: 1, model.PR: 1, model.KOS: 1, model.LS: 1, model.ThirdDownBack: 1,
	}
}

// Of returns the capacity of p, zero for unknown codes.
func (c Capacities) Of(p model.Position) int {
	if !p.Valid() {
		return 0
	}
	return c[p]
}
