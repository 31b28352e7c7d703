// Package power reports the device's wakefulness and deep-idle state by
// parsing the stdout of host utility commands, spawned directly with explicit
// argv and no shell.
package power

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

// runner abstracts process spawning so tests can inject canned output
// without actually invoking dumpsys.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// realRunner returns the command's stdout; a non-zero exit status is not
// treated as an error, only a failure to spawn or read is.
func realRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, nil
	}
	return out, err
}

// Probe queries power/idle state. Both methods are best-effort: a spawn or
// read failure yields false and a logged warning rather than an error,
// matching the component's "tolerate any exit code" contract. Callers
// should invoke each method at most once per tick (spawning a process is
// comparatively expensive).
type Probe struct {
	run runner
}

// NewProbe returns a Probe that spawns real host utilities.
func NewProbe() *Probe {
	return &Probe{run: realRunner}
}

// IsAsleep reports whether the device's display is currently off, by
// checking for the token "mWakefulness=Asleep" in `dumpsys power` output.
func (p *Probe) IsAsleep(ctx context.Context) bool {
	out, err := p.run(ctx, "dumpsys", "power")
	if err != nil {
		slog.Warn("power probe: dumpsys power failed", "err", err)
		return false
	}
	return strings.Contains(string(out), "mWakefulness=Asleep")
}

// IsDeepIdle reports whether the device is in a deep-idle (Doze) state, by
// checking that `dumpsys deviceidle get deep` output trims to exactly
// "IDLE".
func (p *Probe) IsDeepIdle(ctx context.Context) bool {
	out, err := p.run(ctx, "dumpsys", "deviceidle", "get", "deep")
	if err != nil {
		slog.Warn("power probe: dumpsys deviceidle failed", "err", err)
		return false
	}
	return strings.TrimSpace(string(out)) == "IDLE"
}
