package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/rostra/internal/domain/model"
	"github.com/okian/rostra/pkg/logger"
)

// Store reads a save and writes an edited copy.
type Store interface {
	// Load reads every table of the import save, sorted in save order.
	Load(ctx context.Context) (model.Tables, model.Schemas, error)
	// Export writes every table in the layout it was loaded with and
	// returns the export directory.
	Export(ctx context.Context, t model.Tables, schemas model.Schemas) (string, error)
}

// CSVStore keeps each save as {dir}/{name}/{name}_{TABLE}.csv.
type CSVStore struct {
	dir        string
	importName string
	exportName string
	dict       *Dictionary
	log        logger.Logger
}

var _ Store = (*CSVStore)(nil)

// NewCSVStore creates a store rooted at dir.
func NewCSVStore(dir string, opts ...Option) *CSVStore {
	s := &CSVStore{dir: dir, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TablePath is the file holding one table of a save.
func (s *CSVStore) TablePath(save string, table model.TableName) string {
	return filepath.Join(s.dir, save, fmt.Sprintf("%s_%s.csv", save, table))
}

// Load reads the import save. Headers are lower-cased; when a data
// dictionary is set its columns and order are used.
func (s *CSVStore) Load(ctx context.Context) (model.Tables, model.Schemas, error) {
	var t model.Tables
	schemas := make(model.Schemas, len(model.AllTables))
	for _, table := range model.AllTables {
		schema, rows, err := s.readTable(table)
		if err != nil {
			return model.Tables{}, nil, err
		}
		schemas[table] = schema
		switch table {
		case model.TablePlayers:
			t.Players, err = decodePlayers(schema, rows)
		case model.TableTeams:
			t.Teams, err = decodeTeams(schema, rows)
		case model.TableDepth:
			t.Depth, err = decodeDepth(schema, rows)
		case model.TableInjuries:
			t.Injuries, err = decodeInjuries(schema, rows)
		}
		if err != nil {
			return model.Tables{}, nil, fmt.Errorf("load %s: %w", s.TablePath(s.importName, table), err)
		}
		s.log.Debug(ctx, "table loaded", logger.String("table", string(table)), logger.Int("rows", len(rows)))
	}
	model.SortPlayers(t.Players)
	model.SortTeams(t.Teams)
	model.SortDepth(t.Depth)
	model.SortInjuries(t.Injuries)
	s.log.Info(ctx, "save loaded",
		logger.String("save", s.importName),
		logger.Int("players", len(t.Players)),
		logger.Int("teams", len(t.Teams)),
		logger.Int("depth_rows", len(t.Depth)),
		logger.Int("injuries", len(t.Injuries)),
	)
	return t, schemas, nil
}

func (s *CSVStore) readTable(table model.TableName) (model.Schema, [][]string, error) {
	path := s.TablePath(s.importName, table)
	header, rows, err := readCSV(path)
	if err != nil {
		return model.Schema{}, nil, err
	}
	schema := model.NewSchema(table, header)
	if s.dict == nil {
		return schema, rows, nil
	}
	declared, ok := s.dict.Schema(table)
	if !ok {
		return schema, rows, nil
	}
	rows, err = project(schema, declared, rows)
	if err != nil {
		return model.Schema{}, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return declared, rows, nil
}

// Export writes t under the export name, creating the directory.
func (s *CSVStore) Export(ctx context.Context, t model.Tables, schemas model.Schemas) (string, error) {
	if s.exportName == "" {
		return "", ErrNoExportName
	}
	dir := filepath.Join(s.dir, s.exportName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	t = t.Clone()
	model.SortPlayers(t.Players)
	model.SortTeams(t.Teams)
	model.SortDepth(t.Depth)
	model.SortInjuries(t.Injuries)

	for _, table := range model.AllTables {
		schema, ok := schemas[table]
		if !ok {
			return "", fmt.Errorf("%w: no layout for %s", ErrMalformed, table)
		}
		var rows [][]string
		switch table {
		case model.TablePlayers:
			rows = encodePlayers(schema, t.Players)
		case model.TableTeams:
			rows = encodeTeams(schema, t.Teams)
		case model.TableDepth:
			rows = encodeDepth(schema, t.Depth)
		case model.TableInjuries:
			rows = encodeInjuries(schema, t.Injuries)
		}
		if err := writeCSV(s.TablePath(s.exportName, table), schema.Headers, rows); err != nil {
			return "", err
		}
	}
	s.log.Info(ctx, "save exported", logger.String("dir", dir))
	return dir, nil
}
