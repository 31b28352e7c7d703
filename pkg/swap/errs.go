package swap

import "errors"

var (
	// ErrNoSuffix means a candidate path has no trailing numeric suffix to
	// sort on (e.g. a directory entry that merely contains "swap" but isn't
	// index-numbered). It is not fatal — such entries sort to the front of
	// the list, so they are popped last.
	ErrNoSuffix = errors.New("swap: no numeric suffix")
)
