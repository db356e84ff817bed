package depthchart

import "errors"

// Sentinel error kinds for depth chart construction.
var (
	ErrNoLongSnapper = errors.New("no long snapper candidate")
)
