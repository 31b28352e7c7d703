package kernel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPressureFile points DYNSWAPD_PRESSURE_DIR at a temp dir for the
// duration of the test, writing resource's content first.
func withPressureFile(t *testing.T, resource, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, resource), []byte(content), 0o644))
	t.Setenv("DYNSWAPD_PRESSURE_DIR", dir)
}

func TestReadPressure_OK(t *testing.T) {
	withPressureFile(t, "memory", "some avg10=1.23 avg60=4.56 avg300=7.89 total=42\nfull avg10=0.00 avg60=0.00 avg300=0.00 total=0\n")

	v, err := ReadPressure("memory", "some", "avg60")
	require.NoError(t, err)
	assert.InDelta(t, 4.56, v, 1e-9)
}

func TestReadPressure_MissingLevel(t *testing.T) {
	withPressureFile(t, "io", "some avg10=1 avg60=2 avg300=3 total=4\n")

	_, err := ReadPressure("io", "full", "avg60")
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestReadPressure_MissingKey(t *testing.T) {
	withPressureFile(t, "cpu", "some avg10=1 avg60=2 avg300=3 total=4\n")

	_, err := ReadPressure("cpu", "some", "avg3600")
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestReadPressure_MissingFile(t *testing.T) {
	t.Setenv("DYNSWAPD_PRESSURE_DIR", t.TempDir())

	_, err := ReadPressure("memory", "some", "avg60")
	assert.True(t, errors.Is(err, ErrUnreadable))
}
