package core

import "errors"

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")
