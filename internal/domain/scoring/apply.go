package scoring

import (
	"fmt"

	"github.com/okian/rostra/internal/domain/model"
)

// ApplyOverall returns a copy of players with povr re-predicted.
func ApplyOverall(players []model.Player, m *RatingModel) ([]model.Player, error) {
	out := model.ClonePlayers(players)
	for i := range out {
		ovr, err := m.PredictOverall(&out[i])
		if err != nil {
			return nil, fmt.Errorf("predict overall: %w", err)
		}
		out[i].Overall = ovr
	}
	return out, nil
}

type depthKey struct {
	tgid, pgid int
	ppos       model.Position
}

// ApplyImportance returns a copy of players with pimp re-predicted. The
// depth rank is the player's entry at its own position, 0 when unlisted.
func ApplyImportance(players []model.Player, depth []model.DepthEntry, m ImportanceModel) ([]model.Player, error) {
	ranks := make(map[depthKey]int, len(depth))
	for _, d := range depth {
		ranks[depthKey{tgid: d.TGID, pgid: d.PGID, ppos: d.Ppos}] = d.Depth
	}

	out := model.ClonePlayers(players)
	for i := range out {
		p := &out[i]
		rank := ranks[depthKey{tgid: p.TGID, pgid: p.PGID, ppos: p.Ppos}]
		imp, err := m.PredictImportance(p.Overall, rank, p.Ppos)
		if err != nil {
			return nil, fmt.Errorf("predict importance for player %d: %w", p.PGID, err)
		}
		p.Importance = imp
	}
	return out, nil
}
