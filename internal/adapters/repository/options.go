// Package repository reads and writes save tables, the data dictionary,
// update feeds and model coefficient files.
package repository

import "github.com/okian/rostra/pkg/logger"

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithImportName sets the save read by Load.
func WithImportName(name string) Option {
	return func(s *CSVStore) {
		s.importName = name
	}
}

// WithExportName sets the save written by Export.
func WithExportName(name string) Option {
	return func(s *CSVStore) {
		s.exportName = name
	}
}

// WithDictionary sets the data dictionary used for column order and
// header spelling.
func WithDictionary(d *Dictionary) Option {
	return func(s *CSVStore) {
		s.dict = d
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *CSVStore) {
		if l != nil {
			s.log = l
		}
	}
}
