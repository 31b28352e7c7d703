// Package bootwait implements a persistent boolean gate that suppresses
// swappiness writes for a bounded warm-up window after boot, while the
// low-memory killer settles.
package bootwait

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Gate is a text file holding exactly "true" or "false".
type Gate struct {
	Path string
}

// New returns a Gate backed by the file at path.
func New(path string) *Gate {
	return &Gate{Path: path}
}

// IsSet reports whether the file exists and contains "true". A missing or
// unreadable file is treated as not set.
func (g *Gate) IsSet() bool {
	data, err := os.ReadFile(g.Path)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "true"
}

// Clear writes "false" to the gate file.
func (g *Gate) Clear() error {
	if err := os.WriteFile(g.Path, []byte("false"), 0o644); err != nil {
		slog.Error("boot-wait gate: clear failed", "path", g.Path, "err", err)
		return err
	}
	return nil
}

// Set writes "true" to the gate file.
func (g *Gate) Set() error {
	if err := os.WriteFile(g.Path, []byte("true"), 0o644); err != nil {
		slog.Error("boot-wait gate: set failed", "path", g.Path, "err", err)
		return err
	}
	return nil
}

// Waiter sleeps once for a configured warm-up duration, then clears the
// gate, and exits. It observes an external stop signal so the sleep can be
// cut short during shutdown.
type Waiter struct {
	Gate   *Gate
	Warmup time.Duration
}

// NewWaiter returns a Waiter with the given gate and warm-up window. A
// non-positive warmup falls back to the 180s default.
func NewWaiter(gate *Gate, warmup time.Duration) *Waiter {
	if warmup <= 0 {
		warmup = 180 * time.Second
	}
	return &Waiter{Gate: gate, Warmup: warmup}
}

// Run blocks for the warm-up window and then clears the gate. If stop fires
// first, it returns without clearing the gate. It is meant to be launched
// once, in its own goroutine.
func (w *Waiter) Run(stop <-chan struct{}) {
	timer := time.NewTimer(w.Warmup)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-stop:
		slog.Info("boot-wait waiter: stopped before warm-up elapsed")
		return
	}

	if err := w.Gate.Clear(); err != nil {
		return
	}
	slog.Info("boot-wait waiter: warm-up elapsed, gate cleared", "warmup", w.Warmup)
}
