package updates

import "errors"

// Sentinel error kinds for update feeds.
var (
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrNoMatch            = errors.New("no matching player")
)
