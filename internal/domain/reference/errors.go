package reference

import "errors"

// Sentinel error kinds for reference lookups.
var (
	ErrLookupMiss      = errors.New("reference lookup miss")
	ErrUnknownPosition = errors.New("unknown position")
	ErrUnknownTeam     = errors.New("unknown team")
)
