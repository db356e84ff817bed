package jersey

import "errors"

// Sentinel error kinds for jersey resolution.
var (
	ErrExhausted = errors.New("no free jersey number")
)
