package repository

import (
	"fmt"
	"strings"

	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/internal/domain/updates"
)

// readFeed reads a feed file and checks its required columns.
func readFeed(path string, name model.TableName, required ...string) (model.Schema, [][]string, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return model.Schema{}, nil, err
	}
	s := model.NewSchema(name, header)
	if err := s.Require(required...); err != nil {
		return model.Schema{}, nil, fmt.Errorf("feed %s: %w", path, err)
	}
	return s, rows, nil
}

// LoadBios reads the missing bio feed.
func LoadBios(path string) ([]updates.BioUpdate, error) {
	s, rows, err := readFeed(path, "bios", model.TeamNameColumn, model.ColFirstName, model.ColLastName,
		model.FirstNameUpdate, model.LastNameUpdate)
	if err != nil {
		return nil, err
	}
	out := make([]updates.BioUpdate, 0, len(rows))
	for _, row := range rows {
		r := record{cols: s.Columns, row: row}
		var u updates.BioUpdate
		u.Team, _ = r.get(model.TeamNameColumn)
		u.FirstName, _ = r.get(model.ColFirstName)
		u.LastName, _ = r.get(model.ColLastName)
		u.NewFirstName, _ = r.get(model.FirstNameUpdate)
		u.NewLastName, _ = r.get(model.LastNameUpdate)
		out = append(out, u)
	}
	return out, nil
}

// LoadAdditions reads roster additions in the PLAY layout.
func LoadAdditions(path string) (updates.Additions, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return updates.Additions{}, err
	}
	s := model.NewSchema(model.TablePlayers, header)
	players, err := decodePlayers(s, rows)
	if err != nil {
		return updates.Additions{}, fmt.Errorf("feed %s: %w", path, err)
	}
	return updates.Additions{Columns: s.Columns, Players: players}, nil
}

// LoadDeletions reads the player deletion feed.
func LoadDeletions(path string) ([]updates.Deletion, error) {
	s, rows, err := readFeed(path, "deletions", model.ColPGID, model.ColFirstName, model.ColLastName)
	if err != nil {
		return nil, err
	}
	out := make([]updates.Deletion, 0, len(rows))
	for n, row := range rows {
		r := record{cols: s.Columns, row: row}
		pgid, err := r.requiredInt(model.ColPGID)
		if err != nil {
			return nil, fmt.Errorf("feed %s row %d: %w", path, n+1, err)
		}
		d := updates.Deletion{PGID: pgid}
		d.FirstName, _ = r.get(model.ColFirstName)
		d.LastName, _ = r.get(model.ColLastName)
		out = append(out, d)
	}
	return out, nil
}

// LoadTransactions reads the finalized transaction feed. Cells are checked
// when the feed is executed.
func LoadTransactions(path string) ([]updates.Transaction, error) {
	s, rows, err := readFeed(path, "transactions", "date", model.ColPGID, model.TransactionColumn,
		model.FromTeamColumn, model.ToTeamColumn)
	if err != nil {
		return nil, err
	}
	out := make([]updates.Transaction, 0, len(rows))
	for n, row := range rows {
		r := record{cols: s.Columns, row: row}
		var tx updates.Transaction
		date, _ := r.get("date")
		kind, _ := r.get(model.TransactionColumn)
		tx.Date = strings.TrimSpace(date)
		tx.Type = updates.TxType(strings.ToLower(strings.TrimSpace(kind)))
		if tx.PGID, err = r.requiredInt(model.ColPGID); err == nil {
			if tx.FromTeam, err = r.optInt(model.FromTeamColumn); err == nil {
				tx.ToTeam, err = r.optInt(model.ToTeamColumn)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("feed %s row %d: %w", path, n+1, err)
		}
		out = append(out, tx)
	}
	return out, nil
}

// LoadRatings reads rating overrides keyed by pgid. Empty cells are not
// overrides.
func LoadRatings(path string) ([]updates.RatingUpdate, error) {
	s, rows, err := readFeed(path, "ratings", model.ColPGID)
	if err != nil {
		return nil, err
	}
	out := make([]updates.RatingUpdate, 0, len(rows))
	for n, row := range rows {
		r := record{cols: s.Columns, row: row}
		pgid, err := r.requiredInt(model.ColPGID)
		if err != nil {
			return nil, fmt.Errorf("feed %s row %d: %w", path, n+1, err)
		}
		u := updates.RatingUpdate{PGID: pgid, Values: make(map[string]int)}
		for i, col := range s.Columns {
			if col == model.ColPGID || strings.TrimSpace(row[i]) == "" {
				continue
			}
			v, err := parseInt(row[i])
			if err != nil {
				return nil, fmt.Errorf("feed %s row %d column %s: %w", path, n+1, col, err)
			}
			u.Values[col] = v
		}
		out = append(out, u)
	}
	return out, nil
}
