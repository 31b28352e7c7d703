//go:build linux

package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyMounted(t *testing.T) {
	ok, detail, err := VerifyMounted()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, detail)
	t.Logf("mount check: %s", detail)
}
