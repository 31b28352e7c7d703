package controller

import (
	"context"
	"time"

	"github.com/fmiop/dynswapd/pkg/swap"
)

// Config holds the tunable operator-facing parameters that drive one
// Controller instance. Field meanings mirror the dotted configuration keys
// the daemon loads at startup.
type Config struct {
	MinSwappiness int
	MaxSwappiness int
	Step          int
	ApplyStep     int

	CPUThresholdPct    float64
	MemoryThresholdPct float64
	IOThresholdPct     float64

	Thresholds swap.ThresholdTable

	WaitTimeout       time.Duration
	PressureBinding   bool
	DeactivateInSleep bool

	CandidateDirs []string
	FileMarker    string
}

// PressureSource samples a single pressure-stall metric. Implementations
// return an error for any unreadable metric (missing file, missing line,
// missing key, parse failure) rather than distinguishing the cause.
type PressureSource interface {
	Sample(resource, level, key string) (float64, error)
}

// SwappinessIO reads and writes the kernel's reclaim-aggressiveness knob.
type SwappinessIO interface {
	Read() (int, error)
	Write(v int) error
}

// SwapActuator performs the kernel-level enable/disable calls against a
// swap backing store.
type SwapActuator interface {
	On(path string) error
	Off(path string) error
}

// UsageSource reports a single active device's utilization.
type UsageSource interface {
	Usage(path string) (usedMB, usedPct float64, err error)
}

// InventorySource performs the two whole-snapshot inventory scans.
type InventorySource interface {
	ListCandidates() (compressed, file []swap.Device, err error)
	ListActive() ([]swap.Device, error)
}

// PowerSource reports device wakefulness and idle depth. Satisfied by
// *power.Probe.
type PowerSource interface {
	IsAsleep(ctx context.Context) bool
	IsDeepIdle(ctx context.Context) bool
}

// BootGate mirrors the persistent boot-wait flag. Satisfied by
// *bootwait.Gate.
type BootGate interface {
	IsSet() bool
}

// StopSignal is the cooperative cancellation flag observed between
// sub-ticks. Satisfied by *lifecycle.Signal.
type StopSignal interface {
	Sleep(d time.Duration) bool
	Stopped() bool
}

// State is a point-in-time, read-only snapshot of controller-owned data,
// for tests and diagnostics.
type State struct {
	TargetSwappiness int
	LastWritten      int
	SwapoffSession   bool
	BootWait         bool
	Active           []swap.Device
	Available        map[swap.Class][]swap.Device
}
