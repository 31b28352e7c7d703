package swap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevice_UsedMB(t *testing.T) {
	d := Device{UsedPages: 2048}
	assert.InDelta(t, 2.0, d.UsedMB(), 1e-9)
}

func TestDevice_UsedPct(t *testing.T) {
	cases := []struct {
		used, size uint64
		want       float64
	}{
		{50, 100, 50},
		{0, 100, 0},
		{100, 100, 100},
		{10, 0, 0}, // undefined utilization -> 0, per the data model invariant
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			d := Device{UsedPages: tc.used, SizePages: tc.size}
			assert.InDelta(t, tc.want, d.UsedPct(), 1e-9)
		})
	}
}

func TestClassify(t *testing.T) {
	marker := "fmiop_swap."
	assert.Equal(t, Compressed, Classify("/dev/block/zram3", marker))
	assert.Equal(t, File, Classify("/data/adb/fmiop/fmiop_swap.2", marker))
	assert.Equal(t, Compressed, Classify("/data/adb/fmiop/swapfile", marker))
}

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()
	assert.Equal(t, 70.0, th[Compressed].ActivationPct)
	assert.Equal(t, 50.0, th[Compressed].DeactivationMB)
	assert.Equal(t, 90.0, th[File].ActivationPct)
	assert.Equal(t, 50.0, th[File].DeactivationMB)
}
