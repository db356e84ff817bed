package repository

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/rostra/internal/domain/model"
)

var depthColumns = []string{model.ColTeam, model.ColPGID, model.ColPosition, model.DepthColumn}

func decodePlayers(s model.Schema, rows [][]string) ([]model.Player, error) {
	if err := s.Require(model.RequiredPlayerColumns...); err != nil {
		return nil, err
	}
	out := make([]model.Player, 0, len(rows))
	for n, row := range rows {
		p, err := decodePlayer(s.Columns, row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.Table, n+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// decodePlayer reads one PLAY row. Empty attribute cells stay absent and
// empty optional core cells read as zero.
func decodePlayer(cols, row []string) (model.Player, error) {
	var p model.Player
	for i, col := range cols {
		cell := row[i]
		switch {
		case col == model.ColFirstName:
			p.FirstName = cell
		case col == model.ColLastName:
			p.LastName = cell
		case strings.TrimSpace(cell) == "":
			if slices.Contains(model.RequiredPlayerColumns, col) {
				return model.Player{}, fmt.Errorf("%w: empty %s", ErrMalformed, col)
			}
		default:
			v, err := parseInt(cell)
			if err != nil {
				return model.Player{}, fmt.Errorf("column %s: %w", col, err)
			}
			p.SetValue(col, v)
		}
	}
	return p, nil
}

func encodePlayers(s model.Schema, players []model.Player) [][]string {
	out := make([][]string, len(players))
	for n := range players {
		p := &players[n]
		row := make([]string, len(s.Columns))
		for i, col := range s.Columns {
			switch col {
			case model.ColFirstName:
				row[i] = p.FirstName
			case model.ColLastName:
				row[i] = p.LastName
			default:
				if v, ok := p.Value(col); ok {
					row[i] = strconv.Itoa(v)
				}
			}
		}
		out[n] = row
	}
	return out
}

// fields keeps every cell except the named key columns.
func fields(cols, row []string, keys ...string) map[string]string {
	m := make(map[string]string, len(cols))
	for i, col := range cols {
		if !slices.Contains(keys, col) {
			m[col] = row[i]
		}
	}
	return m
}

func decodeTeams(s model.Schema, rows [][]string) ([]model.Team, error) {
	if err := s.Require(model.ColTeam, model.TeamNameColumn); err != nil {
		return nil, err
	}
	out := make([]model.Team, 0, len(rows))
	for n, row := range rows {
		r := record{cols: s.Columns, row: row}
		tgid, err := r.requiredInt(model.ColTeam)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.Table, n+1, err)
		}
		name, _ := r.get(model.TeamNameColumn)
		out = append(out, model.Team{TGID: tgid, Name: name, Fields: fields(s.Columns, row, model.ColTeam, model.TeamNameColumn)})
	}
	return out, nil
}

func encodeTeams(s model.Schema, teams []model.Team) [][]string {
	out := make([][]string, len(teams))
	for n, t := range teams {
		row := make([]string, len(s.Columns))
		for i, col := range s.Columns {
			switch col {
			case model.ColTeam:
				row[i] = strconv.Itoa(t.TGID)
			case model.TeamNameColumn:
				row[i] = t.Name
			default:
				row[i] = t.Fields[col]
			}
		}
		out[n] = row
	}
	return out
}

func decodeDepth(s model.Schema, rows [][]string) ([]model.DepthEntry, error) {
	if err := s.Require(depthColumns...); err != nil {
		return nil, err
	}
	if len(s.Columns) != len(depthColumns) {
		return nil, model.SchemaMismatch(s.Table, depthColumns, s.Columns)
	}
	out := make([]model.DepthEntry, 0, len(rows))
	for n, row := range rows {
		r := record{cols: s.Columns, row: row}
		vals := make([]int, len(depthColumns))
		for i, col := range depthColumns {
			v, err := r.requiredInt(col)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", s.Table, n+1, err)
			}
			vals[i] = v
		}
		d := model.DepthEntry{TGID: vals[0], PGID: vals[1], Ppos: model.Position(vals[2]), Depth: vals[3]}
		out = append(out, d)
	}
	return out, nil
}

func encodeDepth(s model.Schema, depth []model.DepthEntry) [][]string {
	out := make([][]string, len(depth))
	for n, d := range depth {
		row := make([]string, len(s.Columns))
		for i, col := range s.Columns {
			switch col {
			case model.ColTeam:
				row[i] = strconv.Itoa(d.TGID)
			case model.ColPGID:
				row[i] = strconv.Itoa(d.PGID)
			case model.ColPosition:
				row[i] = strconv.Itoa(int(d.Ppos))
			case model.DepthColumn:
				row[i] = strconv.Itoa(d.Depth)
			}
		}
		out[n] = row
	}
	return out
}

func decodeInjuries(s model.Schema, rows [][]string) ([]model.Injury, error) {
	if err := s.Require(model.ColTeam, model.ColPGID); err != nil {
		return nil, err
	}
	out := make([]model.Injury, 0, len(rows))
	for n, row := range rows {
		r := record{cols: s.Columns, row: row}
		tgid, err := r.requiredInt(model.ColTeam)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.Table, n+1, err)
		}
		pgid, err := r.requiredInt(model.ColPGID)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.Table, n+1, err)
		}
		out = append(out, model.Injury{TGID: tgid, PGID: pgid, Fields: fields(s.Columns, row, model.ColTeam, model.ColPGID)})
	}
	return out, nil
}

func encodeInjuries(s model.Schema, injuries []model.Injury) [][]string {
	out := make([][]string, len(injuries))
	for n, in := range injuries {
		row := make([]string, len(s.Columns))
		for i, col := range s.Columns {
			switch col {
			case model.ColTeam:
				row[i] = strconv.Itoa(in.TGID)
			case model.ColPGID:
				row[i] = strconv.Itoa(in.PGID)
			default:
				row[i] = in.Fields[col]
			}
		}
		out[n] = row
	}
	return out
}
