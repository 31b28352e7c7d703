package controller

import (
	"github.com/fmiop/dynswapd/pkg/kernel"
	"github.com/fmiop/dynswapd/pkg/swap"
)

// kernelPressure adapts pkg/kernel.ReadPressure to PressureSource.
type kernelPressure struct{}

func (kernelPressure) Sample(resource, level, key string) (float64, error) {
	return kernel.ReadPressure(resource, level, key)
}

// kernelSwappiness adapts pkg/kernel's swappiness reader/writer to
// SwappinessIO.
type kernelSwappiness struct{}

func (kernelSwappiness) Read() (int, error) { return kernel.ReadSwappiness() }
func (kernelSwappiness) Write(v int) error  { return kernel.WriteSwappiness(v) }

// kernelActuator adapts pkg/kernel's raw swapon/swapoff to SwapActuator.
type kernelActuator struct{}

func (kernelActuator) On(path string) error  { return kernel.Swapon(path) }
func (kernelActuator) Off(path string) error { return kernel.Swapoff(path) }

// kernelUsage adapts pkg/swap.Usage to UsageSource.
type kernelUsage struct{}

func (kernelUsage) Usage(path string) (float64, float64, error) { return swap.Usage(path) }

// swapInventory adapts pkg/swap's directory scan and active-list readers
// to InventorySource, fixed to a set of candidate directories and a
// swap-file marker.
type swapInventory struct {
	dirs   []string
	marker string
}

func (s swapInventory) ListCandidates() (compressed, file []swap.Device, err error) {
	return swap.ListCandidates(s.dirs, s.marker)
}

func (s swapInventory) ListActive() ([]swap.Device, error) {
	return swap.ListActive(s.marker)
}

// NewKernelPressureSource returns a PressureSource backed by the real
// kernel pressure-stall files.
func NewKernelPressureSource() PressureSource { return kernelPressure{} }

// NewKernelSwappinessIO returns a SwappinessIO backed by the real kernel
// swappiness knob file.
func NewKernelSwappinessIO() SwappinessIO { return kernelSwappiness{} }

// NewKernelSwapActuator returns a SwapActuator backed by the real
// swapon/swapoff syscalls.
func NewKernelSwapActuator() SwapActuator { return kernelActuator{} }

// NewKernelUsageSource returns a UsageSource backed by the real
// /proc/swaps scan.
func NewKernelUsageSource() UsageSource { return kernelUsage{} }

// NewSwapInventory returns an InventorySource scoped to dirs/marker.
func NewSwapInventory(dirs []string, marker string) InventorySource {
	return swapInventory{dirs: dirs, marker: marker}
}
