// Package controller implements the tick-driven state machine that
// combines pressure, swap inventory, and power state into swappiness
// updates and swap-device enable/disable decisions.
package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fmiop/dynswapd/pkg/swap"
)

// lowUsageMB is the fixed threshold used by the deep-contract/shed-low scan
// over the active list, independent of each class's configured
// deactivation threshold.
const lowUsageMB = swap.LowUsageMB

// subTickCount and subTickDuration divide one second-long tick into short
// slices so a stop signal is observed promptly.
const (
	subTickCount    = 10
	subTickDuration = 100 * time.Millisecond
)

// Controller owns the swappiness knob, the two swap-device inventory
// lists, and the sleep-session flag, and drives them forward one tick at a
// time.
type Controller struct {
	cfg Config

	mu        sync.Mutex
	available map[swap.Class][]swap.Device
	active    []swap.Device

	lastWritten    int
	target         int
	swapoffSession bool

	pressure   PressureSource
	swappiness SwappinessIO
	actuator   SwapActuator
	usage      UsageSource
	inventory  InventorySource
	power      PowerSource
	bootGate   BootGate
	stop       StopSignal

	// spawn launches a worker function; defaults to a bare goroutine.
	// Tests override it to run workers synchronously.
	spawn func(func())
}

// Deps bundles the collaborators a Controller needs beyond Config. Real
// callers build these with the NewKernel*/NewSwapInventory constructors
// plus a *power.Probe, *bootwait.Gate, and *lifecycle.Signal; tests supply
// fakes.
type Deps struct {
	Pressure   PressureSource
	Swappiness SwappinessIO
	Actuator   SwapActuator
	Usage      UsageSource
	Inventory  InventorySource
	Power      PowerSource
	BootGate   BootGate
	Stop       StopSignal
}

// New builds a Controller and performs the startup sequence: snapshot the
// inventory, read the current swappiness as last_written, set target to
// the configured minimum, and seed the sleep-session flag.
func New(cfg Config, deps Deps) (*Controller, error) {
	c := &Controller{
		cfg:        cfg,
		pressure:   deps.Pressure,
		swappiness: deps.Swappiness,
		actuator:   deps.Actuator,
		usage:      deps.Usage,
		inventory:  deps.Inventory,
		power:      deps.Power,
		bootGate:   deps.BootGate,
		stop:       deps.Stop,
		spawn:      func(f func()) { go f() },
		available:  map[swap.Class][]swap.Device{},
	}

	compressed, file, err := c.inventory.ListCandidates()
	if err != nil {
		slog.Warn("controller startup: candidate scan failed", "err", err)
	}
	c.available[swap.Compressed] = compressed
	c.available[swap.File] = file

	active, err := c.inventory.ListActive()
	if err != nil {
		slog.Warn("controller startup: active scan failed", "err", err)
	}
	c.active = active

	last, err := c.swappiness.Read()
	if err != nil {
		slog.Warn("controller startup: swappiness read failed, defaulting to min", "err", err)
		last = cfg.MinSwappiness
	}
	c.lastWritten = last
	c.target = cfg.MinSwappiness
	c.swapoffSession = !cfg.DeactivateInSleep

	return c, nil
}

// State returns a snapshot of controller-owned data under lock.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	avail := make(map[swap.Class][]swap.Device, len(c.available))
	for class, devs := range c.available {
		avail[class] = append([]swap.Device(nil), devs...)
	}

	return State{
		TargetSwappiness: c.target,
		LastWritten:      c.lastWritten,
		SwapoffSession:   c.swapoffSession,
		BootWait:         c.bootGate.IsSet(),
		Active:           append([]swap.Device(nil), c.active...),
		Available:        avail,
	}
}

// Run drives Tick in a loop until the stop signal fires.
func (c *Controller) Run(ctx context.Context) {
	for !c.stop.Stopped() {
		c.Tick(ctx)
	}
}

// Tick executes one full control decision: sample pressure, update the
// swappiness target, refresh the sleep session, commit the knob if due,
// act on the swap pool, then sleep out the remainder of the tick in short
// slices.
func (c *Controller) Tick(ctx context.Context) {
	noPressure, cpu, mem, io := c.samplePressure()

	pressured := noPressure ||
		cpu > c.cfg.CPUThresholdPct ||
		mem > c.cfg.MemoryThresholdPct ||
		io > c.cfg.IOThresholdPct

	var unbounded bool
	if pressured {
		c.target = max(c.cfg.MinSwappiness, c.target-c.cfg.Step)
		unbounded = true
	} else {
		c.target = min(c.cfg.MaxSwappiness, c.target+c.cfg.Step)
		unbounded = !c.cfg.PressureBinding
	}

	c.updateSleepSession(ctx)
	c.commitSwappiness()

	if unbounded {
		c.actOnSwapPool()
	}

	c.sleepOutTick()
}

func (c *Controller) samplePressure() (noPressure bool, cpu, mem, io float64) {
	var err error
	cpu, err = c.pressure.Sample("cpu", "some", "avg10")
	if err != nil {
		noPressure = true
	}
	mem, err = c.pressure.Sample("memory", "some", "avg60")
	if err != nil {
		noPressure = true
	}
	io, err = c.pressure.Sample("io", "some", "avg60")
	if err != nil {
		noPressure = true
	}
	return noPressure, cpu, mem, io
}

func (c *Controller) updateSleepSession(ctx context.Context) {
	if !c.cfg.DeactivateInSleep {
		c.swapoffSession = true
		return
	}

	asleep := c.power.IsAsleep(ctx)
	switch {
	case !c.swapoffSession && asleep:
		if c.waitConfirmAsleep(ctx) {
			c.swapoffSession = true
		}
	case !asleep:
		c.swapoffSession = false
	}
}

// waitConfirmAsleep polls IsAsleep once a second for up to WaitTimeout,
// exiting early on wake or on a stop signal.
func (c *Controller) waitConfirmAsleep(ctx context.Context) bool {
	deadline := time.Now().Add(c.cfg.WaitTimeout)
	for time.Now().Before(deadline) {
		if !c.power.IsAsleep(ctx) {
			return false
		}
		if !c.stop.Sleep(time.Second) {
			return false
		}
	}
	return c.power.IsAsleep(ctx)
}

func (c *Controller) commitSwappiness() {
	if c.bootGate.IsSet() {
		return
	}
	if c.target == c.lastWritten {
		return
	}
	delta := c.target - c.lastWritten
	if delta < 0 {
		delta = -delta
	}
	atBound := c.target == c.cfg.MinSwappiness || c.target == c.cfg.MaxSwappiness
	if delta >= c.cfg.ApplyStep || atBound {
		if err := c.swappiness.Write(c.target); err != nil {
			slog.Warn("controller: swappiness write failed", "target", c.target, "err", err)
			return
		}
		c.lastWritten = c.target
	}
}

// actOnSwapPool implements step 6 of the per-tick algorithm: bootstrap,
// expand, or contract (deep-contract/shed-low) the active swap pool.
// Workers are spawned after the lock is released, since a worker's
// reconciliation step needs the same mutex.
func (c *Controller) actOnSwapPool() {
	toSchedule := c.actOnSwapPoolLocked()
	for _, dev := range toSchedule {
		c.scheduleSwapoff(dev)
	}
}

func (c *Controller) actOnSwapPoolLocked() []swap.Device {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected := swap.Compressed
	if len(c.available[swap.Compressed]) == 0 {
		selected = swap.File
	}

	if len(c.active) == 0 {
		c.activateFromLocked(selected)
		return nil
	}

	last := c.active[len(c.active)-1]
	usedMB, usedPct, err := c.usage.Usage(last.Path)
	if err != nil {
		slog.Warn("controller: usage query failed", "path", last.Path, "err", err)
	}
	th := c.cfg.Thresholds[last.Class]

	if usedPct > th.ActivationPct {
		c.activateFromLocked(selected)
		return nil
	}

	lastNonLow, lowUsage, lowNlCount := c.scanLowUsageLocked()
	if lastNonLow == nil {
		return nil
	}
	_, prevPct, prevErr := c.usage.Usage(lastNonLow.Path)
	if prevErr != nil {
		return nil
	}
	prevTh := c.cfg.Thresholds[lastNonLow.Class]

	switch {
	case prevPct < prevTh.ActivationPct && usedMB < th.DeactivationMB && c.swapoffSession:
		c.active = c.active[:len(c.active)-1]
		return []swap.Device{last}
	case prevPct < prevTh.ActivationPct && lowNlCount > 1:
		kept := make([]swap.Device, 0, len(c.active))
		low := make(map[string]bool, len(lowUsage))
		for _, d := range lowUsage {
			low[d.Path] = true
		}
		for _, d := range c.active {
			if !low[d.Path] {
				kept = append(kept, d)
			}
		}
		c.active = kept
		return lowUsage
	}
	return nil
}

// scanLowUsageLocked performs the single backward pass over the active
// list (mutex already held by the caller) that identifies the most
// recently activated device under lowUsageMB (lastNonLow), the count of
// all such devices (lowNlCount), and every other low device (lowUsage).
func (c *Controller) scanLowUsageLocked() (lastNonLow *swap.Device, lowUsage []swap.Device, lowNlCount int) {
	for i := len(c.active) - 1; i >= 0; i-- {
		d := c.active[i]
		mb, _, err := c.usage.Usage(d.Path)
		if err != nil || mb >= lowUsageMB {
			continue
		}
		lowNlCount++
		if lastNonLow == nil {
			dCopy := d
			lastNonLow = &dCopy
			continue
		}
		lowUsage = append(lowUsage, d)
	}
	return lastNonLow, lowUsage, lowNlCount
}

// activateFromLocked pops the tail of available[class] and activates it,
// appending to active on success. Mutex already held by the caller.
func (c *Controller) activateFromLocked(class swap.Class) {
	list := c.available[class]
	if len(list) == 0 {
		return
	}
	dev := list[len(list)-1]
	c.available[class] = list[:len(list)-1]

	if err := c.actuator.On(dev.Path); err != nil {
		slog.Warn("controller: swapon failed", "path", dev.Path, "err", err)
		return
	}
	c.active = append(c.active, dev)
}

// scheduleSwapoff launches a fire-and-forget worker that deactivates dev.
// The caller must already have removed dev from active.
func (c *Controller) scheduleSwapoff(dev swap.Device) {
	c.spawn(func() { c.swapoffWorker(dev) })
}

// swapoffWorker performs a single swapoff call and reconciles the result
// into available or active.
func (c *Controller) swapoffWorker(dev swap.Device) {
	if err := c.actuator.Off(dev.Path); err != nil {
		slog.Warn("swapoff worker: failed, reconciling back to active", "path", dev.Path, "err", err)
		c.mu.Lock()
		c.active = append(c.active, dev)
		c.mu.Unlock()
		return
	}
	c.mu.Lock()
	c.available[dev.Class] = append(c.available[dev.Class], dev)
	c.mu.Unlock()
}

func (c *Controller) sleepOutTick() {
	for i := 0; i < subTickCount; i++ {
		if c.stop.Stopped() {
			return
		}
		if !c.stop.Sleep(subTickDuration) {
			return
		}
	}
}
