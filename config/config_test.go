package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("path() uses os.UserConfigDir on windows, not HOME")
	}
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, byte(0x4e), cfg.GapByte)
	assert.Equal(t, 42, cfg.IndexGap)
	assert.Equal(t, 22, cfg.DataGap)
	assert.Equal(t, 0, cfg.Verbose)

	// A second load should read back the file just created rather than
	// erroring on a pre-existing path.
	cfg2, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.GapByte, cfg2.GapByte)
}
