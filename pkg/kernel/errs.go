package kernel

import "errors"

var (
	// ErrUnreadable means a pressure metric could not be read: the file
	// could not be opened, the requested level line was absent, or the
	// requested key was absent on that line.
	ErrUnreadable = errors.New("kernel: pressure metric unreadable")

	// ErrNoSwappiness means /proc/sys/vm/swappiness did not contain a
	// parseable integer.
	ErrNoSwappiness = errors.New("kernel: swappiness unreadable")

	// ErrDeviceNotActive means a swap-status lookup for a path found no
	// matching row in /proc/swaps.
	ErrDeviceNotActive = errors.New("kernel: device not active")

	// ErrNoHeader means /proc/swaps had no header line to skip, which
	// only happens if the file is empty or truncated mid-read.
	ErrNoHeader = errors.New("kernel: swaps file missing header")
)
