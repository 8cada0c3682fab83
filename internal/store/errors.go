package store

import "errors"

// ErrStoreUnavailable is returned by every ScoreStore method when no
// database connection was configured.
var ErrStoreUnavailable = errors.New("store: no database connection configured")
