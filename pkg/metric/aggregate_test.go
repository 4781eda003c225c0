package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-easl/matbench/pkg/common"
)

func TestSummarizeReference(t *testing.T) {
	result := common.NewBenchmarkResult()
	result.Record(common.ReferenceBackendName, 64, common.MetricRecord{
		common.MetricMultiplyTimeMs: 2.0,
		common.MetricGflops:         30.0,
	})
	result.Record(common.ReferenceBackendName, 128, common.MetricRecord{
		common.MetricMultiplyTimeMs: 9.0,
		common.MetricGflops:         40.0,
	})

	summary := Summarize(result)
	require.Contains(t, summary, common.ReferenceBackendName)

	reference := summary[common.ReferenceBackendName]
	assert.Equal(t, 2.0, reference.MinTimeMs)
	assert.Equal(t, 9.0, reference.MaxTimeMs)
	assert.InDelta(t, 35.0, reference.AvgGflops, 1e-12)
	assert.Zero(t, reference.AvgSpeedup)
}

func TestSummarizeExternalMissingSpeedupCountsAsNeutral(t *testing.T) {
	result := common.NewBenchmarkResult()
	result.Record("c_x86", 64, common.MetricRecord{
		common.MetricOptimizedTimeMs: 10.0,
		common.MetricSpeedup:         2.0,
	})
	result.Record("c_x86", 128, common.MetricRecord{
		common.MetricOptimizedTimeMs: 20.0,
	})

	summary := Summarize(result)
	require.Contains(t, summary, "c_x86")

	external := summary["c_x86"]
	assert.Equal(t, 10.0, external.MinTimeMs)
	assert.Equal(t, 20.0, external.MaxTimeMs)
	assert.InDelta(t, 1.5, external.AvgSpeedup, 1e-12)
	assert.Zero(t, external.AvgGflops)
}

func TestSummarizeSkipsSizesWithoutOptimizedTime(t *testing.T) {
	result := common.NewBenchmarkResult()
	result.Record("c_x86", 64, common.MetricRecord{
		common.MetricOptimizedTimeMs: 10.0,
		common.MetricSpeedup:         3.0,
	})
	// Naive-only record; contributes nothing to the summary.
	result.Record("c_x86", 128, common.MetricRecord{
		common.MetricNaiveTimeMs: 50.0,
	})

	summary := Summarize(result)
	require.Contains(t, summary, "c_x86")

	external := summary["c_x86"]
	assert.Equal(t, 10.0, external.MinTimeMs)
	assert.Equal(t, 10.0, external.MaxTimeMs)
	assert.InDelta(t, 3.0, external.AvgSpeedup, 1e-12)
}

func TestSummarizeOmitsBackendWithoutUsableData(t *testing.T) {
	result := common.NewBenchmarkResult()
	result.Record("c_x86", 64, common.MetricRecord{})
	result.Record("c_x86", 128, common.MetricRecord{
		common.MetricNaiveTimeMs: 50.0,
	})

	summary := Summarize(result)

	assert.NotContains(t, summary, "c_x86")
	assert.Empty(t, summary)
}
