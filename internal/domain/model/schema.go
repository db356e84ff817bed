package model

import (
	"fmt"
	"slices"
	"strings"
)

// TableName identifies one of the save tables.
type TableName string

// Save tables, named as in the export file suffixes.
const (
	TablePlayers  TableName = "PLAY"
	TableTeams    TableName = "TEAM"
	TableDepth    TableName = "DCHT"
	TableInjuries TableName = "INJY"
)

// AllTables lists the save tables in load order.
var AllTables = []TableName{TablePlayers, TableTeams, TableDepth, TableInjuries}

// Schema is the column layout of a table: lower-cased names used by the
// engine and the original header spelling used on export.
type Schema struct {
	Table   TableName
	Columns []string
	Headers []string
}

// NewSchema builds a schema from source headers, keeping their order.
func NewSchema(table TableName, headers []string) Schema {
	s := Schema{Table: table, Headers: slices.Clone(headers), Columns: make([]string, len(headers))}
	for i, h := range headers {
		s.Columns[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return s
}

// Has reports whether the schema contains col.
func (s Schema) Has(col string) bool { return slices.Contains(s.Columns, col) }

// Require checks that every column in cols is part of the schema.
func (s Schema) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !s.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s missing columns %s", ErrSchemaMismatch, s.Table, strings.Join(missing, ","))
	}
	return nil
}

// SameColumns reports whether other has exactly the same columns in order.
func (s Schema) SameColumns(other []string) bool { return slices.Equal(s.Columns, other) }

// SchemaMismatch describes a column layout that differs from the table's.
func SchemaMismatch(table TableName, want, got []string) error {
	return fmt.Errorf("%w: %s expects columns [%s], got [%s]",
		ErrSchemaMismatch, table, strings.Join(want, ","), strings.Join(got, ","))
}

// Range is an inclusive numeric range declared for a column.
type Range struct {
	Min int
	Max int
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

func (r Range) String() string { return fmt.Sprintf("[%d, %d]", r.Min, r.Max) }

// Schemas holds the layout of each loaded table.
type Schemas map[TableName]Schema

// Clone deep-copies the schemas. A nil receiver clones to nil.
func (s Schemas) Clone() Schemas {
	if s == nil {
		return nil
	}
	out := make(Schemas, len(s))
	for t, sc := range s {
		sc.Columns = slices.Clone(sc.Columns)
		sc.Headers = slices.Clone(sc.Headers)
		out[t] = sc
	}
	return out
}
