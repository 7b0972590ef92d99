package repository

import "errors"

// ErrNotFound is returned when a lookup, update, or delete matches no row.
var ErrNotFound = errors.New("not found")
