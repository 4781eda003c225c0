package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	return path
}

func TestReadConfigurationFile(t *testing.T) {
	path := writeConfig(t, `{
		"Seed": 7,
		"MatrixSizes": [32, 64],
		"Backends": [
			{"Name": "c_x86", "Path": "build/x86/riscv_optimizer"}
		],
		"TimeoutSeconds": 30,
		"OutputPathPrefix": "out/bench",
		"PlotDirectory": "out/figs",
		"EnablePlots": true
	}`)

	cfg := ReadConfigurationFile(path)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, []int{32, 64}, cfg.MatrixSizes)
	require.Len(t, cfg.Backends, 1)
	assert.Equal(t, "c_x86", cfg.Backends[0].Name)
	assert.Equal(t, "build/x86/riscv_optimizer", cfg.Backends[0].Path)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.True(t, cfg.EnablePlots)
}

func TestReadConfigurationFileDefaults(t *testing.T) {
	cfg := ReadConfigurationFile(writeConfig(t, `{}`))

	assert.Equal(t, DefaultMatrixSizes, cfg.MatrixSizes)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	assert.NotEmpty(t, cfg.OutputPathPrefix)
	assert.NotEmpty(t, cfg.PlotDirectory)
	assert.Empty(t, cfg.Backends)
	assert.False(t, cfg.EnablePlots)
}
