//go:build linux

package kernel

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Swapon activates path as a swap backing store with no special flags.
// The controller removes the candidate from its "available" set before
// calling this; on failure it logs and does not put the candidate back.
func Swapon(path string) error {
	if err := unix.Swapon(path, 0); err != nil {
		return fmt.Errorf("swapon %s: %w", path, err)
	}
	return nil
}

// Swapoff deactivates path. On failure the caller must reconcile path back
// into its active set — this function performs no retry.
func Swapoff(path string) error {
	if err := unix.Swapoff(path); err != nil {
		return fmt.Errorf("swapoff %s: %w", path, err)
	}
	return nil
}
