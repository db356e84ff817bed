package depthchart

import (
	"cmp"

	"github.com/okian/rostra/internal/domain/model"
)

// specialist picks the single rank-0 player of a depth-only slot from an
// eligible pool. prefer returns a negative value when a should be chosen
// over b.
type specialist struct {
	pos      model.Position
	eligible func(p *model.Player) bool
	prefer   func(a, b *model.Player) int
}

func isKicking(p *model.Player) bool { return p.Ppos == model.K || p.Ppos == model.P }
func anyPlayer(*model.Player) bool   { return true }

func at(pos model.Position) func(p *model.Player) bool {
	return func(p *model.Player) bool { return p.Ppos == pos }
}

func desc(a, b int) int { return cmp.Compare(b, a) }

// kicker: a kicker when the team has one, otherwise its best punter; the
// higher overall wins within the chosen position.
func preferKicker(a, b *model.Player) int {
	return cmp.Or(cmp.Compare(a.Ppos, b.Ppos), desc(a.Overall, b.Overall), cmp.Compare(a.PGID, b.PGID))
}

// punter: a punter when the team has one, otherwise its best kicker.
func preferPunter(a, b *model.Player) int {
	return cmp.Or(desc(int(a.Ppos), int(b.Ppos)), desc(a.Overall, b.Overall), cmp.Compare(a.PGID, b.PGID))
}

// returner: best kick return, then speed, then tackle breaking.
func preferReturner(a, b *model.Player) int {
	return cmp.Or(
		desc(a.Attr(model.AttrKickReturn), b.Attr(model.AttrKickReturn)),
		desc(a.Attr(model.AttrSpeed), b.Attr(model.AttrSpeed)),
		desc(a.Attr(model.AttrBreakTackle), b.Attr(model.AttrBreakTackle)),
		cmp.Compare(a.PGID, b.PGID),
	)
}

// long snapper: the weakest tight end.
func preferLongSnapper(a, b *model.Player) int {
	return cmp.Or(cmp.Compare(a.Overall, b.Overall), cmp.Compare(a.PGID, b.PGID))
}

// third down back: the best pass-catching halfback.
func preferThirdDownBack(a, b *model.Player) int {
	return cmp.Or(desc(a.Attr(model.AttrCatching), b.Attr(model.AttrCatching)), cmp.Compare(a.PGID, b.PGID))
}

// specialists in slot order. The punt returner is not listed: it always
// mirrors the kick returner.
var specialists = []specialist{
	{pos: model.K, eligible: isKicking, prefer: preferKicker},
	{pos: model.P, eligible: isKicking, prefer: preferPunter},
	{pos: model.KR, eligible: anyPlayer, prefer: preferReturner},
	{pos: model.KOS, eligible: isKicking, prefer: preferKicker},
	{pos: model.LS, eligible: at(model.TE), prefer: preferLongSnapper},
	{pos: model.ThirdDownBack, eligible: at(model.HB), prefer: preferThirdDownBack},
}

// pick returns the preferred eligible player, nil for an empty pool.
func (s specialist) pick(roster []*model.Player) *model.Player {
	var best *model.Player
	for _, p := range roster {
		if !s.eligible(p) {
			continue
		}
		if best == nil || s.prefer(p, best) < 0 {
			best = p
		}
	}
	return best
}
