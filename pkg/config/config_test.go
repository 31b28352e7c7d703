package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) *Provider {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fmiop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return New(path)
}

func TestGet_Int(t *testing.T) {
	p := writeYAML(t, "swappiness:\n  min: 60\n  max: 140\n")
	assert.Equal(t, 60, Get(p, "swappiness.min", 0))
	assert.Equal(t, 140, Get(p, ".swappiness.max", 0))
}

func TestGet_Bool(t *testing.T) {
	p := writeYAML(t, "deactivate_in_sleep: true\n")
	assert.Equal(t, true, Get(p, "deactivate_in_sleep", false))
}

func TestGet_Float(t *testing.T) {
	p := writeYAML(t, "thresholds:\n  compressed:\n    activation_pct: 72.5\n")
	assert.InDelta(t, 72.5, Get(p, "thresholds.compressed.activation_pct", 0.0), 1e-9)
}

func TestGet_String(t *testing.T) {
	p := writeYAML(t, "marker: fmiop_swap.\n")
	assert.Equal(t, "fmiop_swap.", Get(p, "marker", ""))
}

func TestGet_MissingKeyReturnsDefault(t *testing.T) {
	p := writeYAML(t, "swappiness:\n  min: 60\n")
	assert.Equal(t, 42, Get(p, "swappiness.max", 42))
	assert.Equal(t, 42, Get(p, "nonexistent.path", 42))
}

func TestGet_MissingFileReturnsDefault(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Equal(t, 7, Get(p, "anything", 7))
}

func TestGet_MalformedYAMLReturnsDefault(t *testing.T) {
	p := writeYAML(t, "swappiness: [this is not\n  a map")
	assert.Equal(t, 7, Get(p, "swappiness.min", 7))
}

func TestGet_TypeMismatchReturnsDefault(t *testing.T) {
	p := writeYAML(t, "marker: fmiop_swap.\n")
	assert.Equal(t, 5, Get(p, "marker", 5))
}

func TestGet_ReloadsOnEachCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fmiop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("swappiness:\n  min: 60\n"), 0o644))
	p := New(path)
	assert.Equal(t, 60, Get(p, "swappiness.min", 0))

	require.NoError(t, os.WriteFile(path, []byte("swappiness:\n  min: 90\n"), 0o644))
	assert.Equal(t, 90, Get(p, "swappiness.min", 0))
}

func TestGet_IntoNonMapIntermediate(t *testing.T) {
	p := writeYAML(t, "marker: fmiop_swap.\n")
	assert.Equal(t, 1, Get(p, "marker.nested", 1))
}
