package model

import "errors"

// ErrStoreUnavailable marks a backing-store timeout or connection failure.
// It is the only error kind a caller may transparently retry.
var ErrStoreUnavailable = errors.New("store unavailable")
