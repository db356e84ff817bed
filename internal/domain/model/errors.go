package model

import "errors"

// Sentinel error kinds for table handling.
var (
	ErrSchemaMismatch = errors.New("schema mismatch")
)
