//go:build linux

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmiop/dynswapd/pkg/bootwait"
	"github.com/fmiop/dynswapd/pkg/config"
	"github.com/fmiop/dynswapd/pkg/controller"
	"github.com/fmiop/dynswapd/pkg/kernel"
	"github.com/fmiop/dynswapd/pkg/lifecycle"
	"github.com/fmiop/dynswapd/pkg/pidfile"
	"github.com/fmiop/dynswapd/pkg/power"
	"github.com/fmiop/dynswapd/pkg/swap"
)

const (
	configFile  = "/sdcard/Android/fmiop/config.yaml"
	logFolder   = "/data/adb/fmiop"
	swapMarker  = "fmiop_swap."
	serviceName = "dyn_swap_service"
)

func pidFilePath() string  { return logFolder + "/fmiop.pids" }
func bootWaitPath() string { return logFolder + "/boot_wait" }

func candidateDirs() []string {
	return []string{"/dev/block", logFolder}
}

func loadConfig() controller.Config {
	p := config.New(configFile)
	return controller.Config{
		MinSwappiness:      config.Get(p, "dynamic_swappiness.swappiness_range.min", 80),
		MaxSwappiness:      config.Get(p, "dynamic_swappiness.swappiness_range.max", 100),
		Step:               config.Get(p, "dynamic_swappiness.step", 2),
		ApplyStep:          config.Get(p, "dynamic_swappiness.apply_step", 20),
		CPUThresholdPct:    config.Get(p, "dynamic_swappiness.threshold.cpu_pressure", 35.0),
		MemoryThresholdPct: config.Get(p, "dynamic_swappiness.threshold.memory_pressure", 15.0),
		IOThresholdPct:     config.Get(p, "dynamic_swappiness.threshold.io_pressure", 30.0),
		Thresholds: swap.ThresholdTable{
			swap.Compressed: {
				ActivationPct:  config.Get(p, "virtual_memory.zram.activation_threshold", 70.0),
				DeactivationMB: config.Get(p, "virtual_memory.zram.deactivation_threshold", 50.0),
			},
			swap.File: {
				ActivationPct:  config.Get(p, "virtual_memory.swap.activation_threshold", 90.0),
				DeactivationMB: config.Get(p, "virtual_memory.swap.deactivation_threshold", 50.0),
			},
		},
		WaitTimeout:       time.Duration(config.Get(p, "virtual_memory.wait_timeout", 10)) * time.Minute,
		PressureBinding:   config.Get(p, "virtual_memory.pressure_binding", false),
		DeactivateInSleep: config.Get(p, "virtual_memory.deactivate_in_sleep", true),
		CandidateDirs:     candidateDirs(),
		FileMarker:        swapMarker,
	}
}

func run(ctx context.Context) error {
	if mounted, detail, err := kernel.VerifyMounted(); err != nil || !mounted {
		return fmt.Errorf("preflight failed (%s): %w", detail, err)
	}

	if err := pidfile.Save(pidFilePath(), serviceName, os.Getpid()); err != nil {
		slog.Warn("startup: pid file save failed, continuing", "err", err)
	}

	cfg := loadConfig()
	gate := bootwait.New(bootWaitPath())
	stop := lifecycle.New()
	defer lifecycle.NotifyOnTerminate(stop)()

	waiter := bootwait.NewWaiter(gate, 180*time.Second)
	go waiter.Run(stop.Done())

	ctl, err := controller.New(cfg, controller.Deps{
		Pressure:   controller.NewKernelPressureSource(),
		Swappiness: controller.NewKernelSwappinessIO(),
		Actuator:   controller.NewKernelSwapActuator(),
		Usage:      controller.NewKernelUsageSource(),
		Inventory:  controller.NewSwapInventory(cfg.CandidateDirs, cfg.FileMarker),
		Power:      power.NewProbe(),
		BootGate:   gate,
		Stop:       stop,
	})
	if err != nil {
		return fmt.Errorf("controller startup: %w", err)
	}

	slog.Info("dynswapd: starting control loop")
	ctl.Run(ctx)
	slog.Info("dynswapd: stopped")
	return nil
}

func main() {
	root := &cobra.Command{
		Use:   "dynswapd",
		Short: "Dynamic swap controller for Android-like Linux hosts",
		Long: `dynswapd samples kernel pressure-stall information, tunes the
reclaim-aggressiveness knob within operator-defined bounds, and activates or
deactivates swap backing stores (zram and file-backed) in response to
utilization and device power state. It takes no arguments and runs until
signalled.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(context.Background())
		},
	}

	if err := root.Execute(); err != nil {
		slog.Error("dynswapd: fatal", "err", err)
		os.Exit(1)
	}
}
