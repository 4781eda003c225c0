package runner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-easl/matbench/pkg/common"
)

func writeFakeBackend(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake_backend.sh")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755)
	require.NoError(t, err)

	return path
}

func TestExternalRunnerSuccess(t *testing.T) {
	path := writeFakeBackend(t, `echo "Naive Algorithm:     20.0 ms"
echo "Optimized Algorithm: 10.0 ms (2.00x speedup)"
`)

	external := NewExternalRunner("fake", path, 10*time.Second)
	require.True(t, external.ArtifactAvailable())

	invocation := external.Run(64)

	require.Equal(t, Completed, invocation.Outcome)
	assert.Equal(t, common.MetricRecord{
		common.MetricNaiveTimeMs:     20.0,
		common.MetricOptimizedTimeMs: 10.0,
		common.MetricSpeedup:         2.0,
	}, invocation.Metrics)
}

func TestExternalRunnerUnparseableOutput(t *testing.T) {
	path := writeFakeBackend(t, `echo "nothing to see here"`)

	invocation := NewExternalRunner("fake", path, 10*time.Second).Run(64)

	require.Equal(t, Completed, invocation.Outcome)
	assert.Empty(t, invocation.Metrics)
}

func TestExternalRunnerFailure(t *testing.T) {
	path := writeFakeBackend(t, `echo "allocation failed" >&2
exit 1
`)

	invocation := NewExternalRunner("fake", path, 10*time.Second).Run(64)

	require.Equal(t, Failed, invocation.Outcome)
	assert.Contains(t, invocation.Diagnostic, "allocation failed")
	assert.Nil(t, invocation.Metrics)
}

func TestExternalRunnerTimeout(t *testing.T) {
	path := writeFakeBackend(t, `sleep 1`)

	invocation := NewExternalRunner("fake", path, 100*time.Millisecond).Run(64)

	require.Equal(t, TimedOut, invocation.Outcome)
	assert.Nil(t, invocation.Metrics)
}

func TestExternalRunnerNotSpawnable(t *testing.T) {
	// Exists but is not executable.
	path := filepath.Join(t.TempDir(), "not_executable")
	require.NoError(t, os.WriteFile(path, []byte("plain data"), 0644))

	external := NewExternalRunner("fake", path, 10*time.Second)
	require.True(t, external.ArtifactAvailable())

	invocation := external.Run(64)
	assert.Equal(t, Failed, invocation.Outcome)
}

func TestArtifactMissing(t *testing.T) {
	external := NewExternalRunner("fake", filepath.Join(t.TempDir(), "missing"), time.Second)

	assert.False(t, external.ArtifactAvailable())
}
