package service

import "errors"

// Sentinel error kinds for the session.
var (
	ErrUnknownStep  = errors.New("unknown step")
	ErrMissingModel = errors.New("coefficient model not configured")
	ErrNoStore      = errors.New("no store configured")
)
