package repository

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/rostra/internal/domain/model"
)

// Data dictionary sheet columns.
const (
	dictColumn   = "column"
	dictViewID   = "view_id"
	dictCategory = "category"
	dictRange    = "range_obs"

	// CategoryAttributes marks rating attribute columns.
	CategoryAttributes = "attributes"
)

// ColumnSpec describes one column of a save table.
type ColumnSpec struct {
	Name     string // header spelling in the save files
	ViewID   int
	Category string
	Range    *model.Range
}

// Dictionary is the data dictionary workbook: one sheet per save table.
type Dictionary struct {
	tables map[model.TableName][]ColumnSpec
}

// LoadDictionary reads the PLAY, TEAM, DCHT and INJY sheets of an xlsx
// workbook. Columns are ordered by view_id.
func LoadDictionary(path string) (*Dictionary, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open data dictionary %s: %w", path, err)
	}
	defer f.Close()

	d := &Dictionary{tables: make(map[model.TableName][]ColumnSpec, len(model.AllTables))}
	for _, table := range model.AllTables {
		rows, err := f.GetRows(string(table))
		if err != nil {
			return nil, fmt.Errorf("data dictionary sheet %s: %w", table, err)
		}
		specs, err := parseSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("data dictionary sheet %s: %w", table, err)
		}
		d.tables[table] = specs
	}
	return d, nil
}

func parseSheet(rows [][]string) ([]ColumnSpec, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrMalformed)
	}
	idx := make(map[string]int)
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx[dictColumn]; !ok {
		return nil, fmt.Errorf("%w: no %s header", ErrMalformed, dictColumn)
	}
	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var specs []ColumnSpec
	for n, row := range rows[1:] {
		name := cell(row, dictColumn)
		if name == "" {
			continue
		}
		spec := ColumnSpec{Name: name, ViewID: n, Category: strings.ToLower(cell(row, dictCategory))}
		if v := cell(row, dictViewID); v != "" {
			id, err := parseInt(v)
			if err != nil {
				return nil, fmt.Errorf("row %d view_id: %w", n+2, err)
			}
			spec.ViewID = id
		}
		if v := cell(row, dictRange); v != "" {
			rg, err := ParseRange(v)
			if err != nil {
				return nil, fmt.Errorf("row %d range_obs: %w", n+2, err)
			}
			spec.Range = &rg
		}
		specs = append(specs, spec)
	}
	slices.SortStableFunc(specs, func(a, b ColumnSpec) int { return cmp.Compare(a.ViewID, b.ViewID) })
	return specs, nil
}

// ParseRange reads an inclusive range written as "[lo, hi]".
func ParseRange(s string) (model.Range, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(s), "[")
	if ok {
		body, ok = strings.CutSuffix(body, "]")
	}
	loCell, hiCell, found := strings.Cut(body, ",")
	if !ok || !found {
		return model.Range{}, fmt.Errorf("%w: range %q", ErrMalformed, s)
	}
	lo, err := parseInt(loCell)
	if err != nil {
		return model.Range{}, err
	}
	hi, err := parseInt(hiCell)
	if err != nil {
		return model.Range{}, err
	}
	return model.Range{Min: lo, Max: hi}, nil
}

// Columns returns the column specs of a table.
func (d *Dictionary) Columns(table model.TableName) []ColumnSpec {
	return slices.Clone(d.tables[table])
}

// Schema returns the table layout declared by the dictionary.
func (d *Dictionary) Schema(table model.TableName) (model.Schema, bool) {
	specs, ok := d.tables[table]
	if !ok || len(specs) == 0 {
		return model.Schema{}, false
	}
	headers := make([]string, len(specs))
	for i, s := range specs {
		headers[i] = s.Name
	}
	return model.NewSchema(table, headers), true
}

// Attributes returns the lower-cased PLAY columns in a category.
func (d *Dictionary) Attributes(table model.TableName, category string) []string {
	var out []string
	for _, s := range d.tables[table] {
		if s.Category == strings.ToLower(category) {
			out = append(out, strings.ToLower(s.Name))
		}
	}
	return out
}

// Ranges returns the declared valid range per lower-cased column.
func (d *Dictionary) Ranges(table model.TableName) map[string]model.Range {
	out := make(map[string]model.Range)
	for _, s := range d.tables[table] {
		if s.Range != nil {
			out[strings.ToLower(s.Name)] = *s.Range
		}
	}
	return out
}
