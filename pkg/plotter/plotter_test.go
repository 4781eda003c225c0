package plotter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-easl/matbench/pkg/common"
)

func plottableResult() *common.BenchmarkResult {
	result := common.NewBenchmarkResult()
	for _, size := range []int{64, 128, 256} {
		n := float64(size)
		result.Record(common.ReferenceBackendName, size, common.MetricRecord{
			common.MetricMultiplyTimeMs: n / 10,
			common.MetricGflops:         2 * n * n * n / (n / 10 * 1e6),
		})
		result.Record("c_x86", size, common.MetricRecord{
			common.MetricNaiveTimeMs:     n / 2,
			common.MetricOptimizedTimeMs: n / 8,
			common.MetricSpeedup:         4.0,
			common.MetricIsaTimeMs:       n / 10,
			common.MetricIsaSpeedup:      5.0,
		})
	}
	return result
}

func TestRenderAll(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "figs")

	require.NoError(t, RenderAll(outputDir, plottableResult()))

	for _, file := range []string{
		"performance_scaling.png",
		"gflops_comparison.png",
		"speedup_analysis.png",
		"isa_speedup_analysis.png",
	} {
		info, err := os.Stat(filepath.Join(outputDir, file))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRenderAllWithoutExternalBackends(t *testing.T) {
	result := common.NewBenchmarkResult()
	result.Record(common.ReferenceBackendName, 64, common.MetricRecord{
		common.MetricMultiplyTimeMs: 1.5,
		common.MetricGflops:         12.0,
	})
	result.Record(common.ReferenceBackendName, 128, common.MetricRecord{
		common.MetricMultiplyTimeMs: 9.5,
		common.MetricGflops:         14.0,
	})

	outputDir := filepath.Join(t.TempDir(), "figs")

	// The speedup charts have nothing to draw; that is reported, not fatal,
	// and the timing charts still render.
	err := RenderAll(outputDir, result)
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(outputDir, "performance_scaling.png"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(outputDir, "speedup_analysis.png"))
	assert.True(t, os.IsNotExist(statErr))
}
