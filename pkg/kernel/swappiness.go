package kernel

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// swappinessPath returns the swappiness pseudo-file path, checking an env
// var override first (for hermetic tests).
func swappinessPath() string {
	if v := os.Getenv("DYNSWAPD_SWAPPINESS_FILE"); v != "" {
		return v
	}
	return "/proc/sys/vm/swappiness"
}

// ReadSwappiness reads the kernel's current reclaim-aggressiveness value.
func ReadSwappiness() (int, error) {
	b, err := os.ReadFile(swappinessPath())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoSwappiness, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("%w: parse %q: %v", ErrNoSwappiness, string(b), err)
	}
	return v, nil
}

// WriteSwappiness writes a new value to the kernel's swappiness knob.
// Writing requires privilege; on failure this logs and returns without
// the caller needing to treat it as fatal — there is no readback-verify
// step, matching the knob's best-effort contract.
func WriteSwappiness(v int) error {
	err := os.WriteFile(swappinessPath(), []byte(strconv.Itoa(v)), 0o644)
	if err != nil {
		slog.Error("write swappiness failed", "value", v, "err", err)
		return err
	}
	return nil
}
