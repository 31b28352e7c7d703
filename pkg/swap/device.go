// Package swap enumerates candidate swap backing stores (compressed RAM
// devices and file-backed swap) and reports their size and utilization.
package swap

// Class distinguishes the two swap backing-store kinds this daemon manages.
type Class int

const (
	// Compressed is a zram-backed device.
	Compressed Class = iota
	// File is a regular file mounted as swap.
	File
)

func (c Class) String() string {
	switch c {
	case Compressed:
		return "compressed"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Device is one candidate or active swap backing store.
type Device struct {
	Path      string
	Class     Class
	SizePages uint64 // kernel reports 1-KiB pages; 0 when not active
	UsedPages uint64
}

// UsedMB converts UsedPages (1-KiB pages) to megabytes.
func (d Device) UsedMB() float64 { return float64(d.UsedPages) / 1024 }

// UsedPct returns used/size as a percentage in [0,100]. If SizePages is 0
// (utilization undefined per the data model's invariant) it returns 0 —
// callers that need to distinguish "truly 0%" from "undefined" should check
// SizePages directly.
func (d Device) UsedPct() float64 {
	if d.SizePages == 0 {
		return 0
	}
	return float64(d.UsedPages) / float64(d.SizePages) * 100
}

// Thresholds holds the activation/deactivation boundaries for one class.
// Activation is percent-of-capacity; deactivation is a megabyte floor.
type Thresholds struct {
	ActivationPct  float64
	DeactivationMB float64
}

// ThresholdTable maps each class to its tunable thresholds.
type ThresholdTable map[Class]Thresholds

// DefaultThresholds returns the built-in configuration defaults.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		Compressed: {ActivationPct: 70, DeactivationMB: 50},
		File:       {ActivationPct: 90, DeactivationMB: 50},
	}
}

// LowUsageMB is the fixed megabyte threshold used by the shed-low/
// deep-contract auxiliary pass over the active list, independent of each
// class's configured DeactivationMB.
const LowUsageMB = 10
