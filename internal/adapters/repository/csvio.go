package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/okian/rostra/internal/domain/model"
)

// readCSV returns the header row and the records of a CSV file.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: %s has no header", ErrMalformed, path)
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header, records[1:], nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// parseInt reads an integer cell. Integral floats such as "70.0" are
// accepted since spreadsheet tools write them.
func parseInt(cell string) (int, error) {
	s := strings.TrimSpace(cell)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformed, cell)
	}
	return int(f), nil
}

// project reorders records from the src column layout to dst. Every dst
// column must exist in src.
func project(src, dst model.Schema, rows [][]string) ([][]string, error) {
	idx := make([]int, len(dst.Columns))
	for i, col := range dst.Columns {
		j := -1
		for k, c := range src.Columns {
			if c == col {
				j = k
				break
			}
		}
		if j < 0 {
			return nil, model.SchemaMismatch(dst.Table, dst.Columns, src.Columns)
		}
		idx[i] = j
	}
	out := make([][]string, len(rows))
	for r, row := range rows {
		rec := make([]string, len(idx))
		for i, j := range idx {
			rec[i] = row[j]
		}
		out[r] = rec
	}
	return out, nil
}

// record maps lower-cased column names to cells of one row.
type record struct {
	cols []string
	row  []string
}

func (r record) get(col string) (string, bool) {
	for i, c := range r.cols {
		if c == col {
			return r.row[i], true
		}
	}
	return "", false
}

func (r record) requiredInt(col string) (int, error) {
	cell, ok := r.get(col)
	if !ok || strings.TrimSpace(cell) == "" {
		return 0, fmt.Errorf("%w: empty %s", ErrMalformed, col)
	}
	v, err := parseInt(cell)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return v, nil
}

// optInt reads an optional integer cell; empty is zero.
func (r record) optInt(col string) (int, error) {
	cell, ok := r.get(col)
	if !ok || strings.TrimSpace(cell) == "" {
		return 0, nil
	}
	v, err := parseInt(cell)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return v, nil
}
