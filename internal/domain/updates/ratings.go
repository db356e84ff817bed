package updates

import (
	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/scoring"
)

// RatingUpdate overrides attribute values of one player.
type RatingUpdate struct {
	PGID   int
	Values map[string]int
}

// UpdateRatings writes feed values for the given attribute columns, keeping
// current values where the feed has none, then re-predicts every overall
// rating.
func UpdateRatings(players []model.Player, feed []RatingUpdate, attrs []string, m *scoring.RatingModel) ([]model.Player, error) {
	byID := make(map[int]map[string]int, len(feed))
	for _, u := range feed {
		byID[u.PGID] = u.Values
	}
	out := model.ClonePlayers(players)
	for i := range out {
		vals, ok := byID[out[i].PGID]
		if !ok {
			continue
		}
		for _, col := range attrs {
			if v, ok := vals[col]; ok {
				out[i].SetValue(col, v)
			}
		}
	}
	return scoring.ApplyOverall(out, m)
}
