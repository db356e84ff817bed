package repository

import "errors"

// Sentinel kinds for save store errors.
var (
	ErrNotFound     = errors.New("file not found")
	ErrMalformed    = errors.New("malformed table")
	ErrNoExportName = errors.New("missing export name")
)
