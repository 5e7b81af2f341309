package database

import "errors"

// ErrNotReady means Start has not run or the pool failed to open.
var ErrNotReady = errors.New("database not ready")
