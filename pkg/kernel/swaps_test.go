package kernel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSwaps = `Filename                                Type            Size            Used            Priority
/dev/block/zram0                       partition       4194300         2936320         32758
/data/adb/fmiop/fmiop_swap.0            file            1048572         104320          -2
`

func withSwapsFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swaps")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("DYNSWAPD_SWAPS_FILE", path)
}

func TestReadSwaps_OK(t *testing.T) {
	withSwapsFile(t, sampleSwaps)

	rows, err := ReadSwaps()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "/dev/block/zram0", rows[0].Path)
	assert.Equal(t, uint64(4194300), rows[0].SizePages)
	assert.Equal(t, uint64(2936320), rows[0].UsedPages)
	assert.Equal(t, 32758, rows[0].Priority)

	assert.Equal(t, "/data/adb/fmiop/fmiop_swap.0", rows[1].Path)
	assert.Equal(t, -2, rows[1].Priority)
}

func TestReadSwaps_HeaderOnly(t *testing.T) {
	withSwapsFile(t, "Filename Type Size Used Priority\n")

	rows, err := ReadSwaps()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadSwaps_Empty(t *testing.T) {
	withSwapsFile(t, "")

	_, err := ReadSwaps()
	assert.True(t, errors.Is(err, ErrNoHeader))
}

func TestSwapUsage(t *testing.T) {
	withSwapsFile(t, sampleSwaps)

	used, size, err := SwapUsage("/dev/block/zram0")
	require.NoError(t, err)
	assert.Equal(t, uint64(2936320), used)
	assert.Equal(t, uint64(4194300), size)

	_, _, err = SwapUsage("/dev/block/zram9")
	assert.True(t, errors.Is(err, ErrDeviceNotActive))
}

func TestIsActive(t *testing.T) {
	withSwapsFile(t, sampleSwaps)

	assert.True(t, IsActive("/dev/block/zram0"))
	assert.False(t, IsActive("/dev/block/zram9"))
}
