/*
 * MIT License
 *
 * Copyright (c) 2023 EASL and the vHive community
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package metric

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/eth-easl/matbench/pkg/common"
)

// Summarize reduces the per-size metrics of every backend into scalar
// statistics. Backends without a single usable size are omitted rather than
// reported as zero entries.
func Summarize(result *common.BenchmarkResult) map[string]common.BackendSummary {
	summary := make(map[string]common.BackendSummary)

	for _, backend := range result.Backends() {
		var backendSummary common.BackendSummary
		var ok bool

		if backend == common.ReferenceBackendName {
			backendSummary, ok = summarizeReference(result, backend)
		} else {
			backendSummary, ok = summarizeExternal(result, backend)
		}

		if ok {
			summary[backend] = backendSummary
		}
	}

	return summary
}

func summarizeReference(result *common.BenchmarkResult, backend string) (common.BackendSummary, bool) {
	var times, gflops []float64

	for _, size := range result.Sizes(backend) {
		record, present := result.Get(backend, size)
		if !present {
			continue
		}
		multiplyTime, measured := record[common.MetricMultiplyTimeMs]
		if !measured {
			continue
		}
		times = append(times, multiplyTime)
		gflops = append(gflops, record[common.MetricGflops])
	}

	if len(times) == 0 {
		return common.BackendSummary{}, false
	}

	return common.BackendSummary{
		MinTimeMs: floats.Min(times),
		MaxTimeMs: floats.Max(times),
		AvgGflops: stat.Mean(gflops, nil),
	}, true
}

func summarizeExternal(result *common.BenchmarkResult, backend string) (common.BackendSummary, bool) {
	var times, speedups []float64

	for _, size := range result.Sizes(backend) {
		record, present := result.Get(backend, size)
		if !present || len(record) == 0 {
			continue
		}
		optimizedTime, measured := record[common.MetricOptimizedTimeMs]
		if !measured {
			continue
		}
		times = append(times, optimizedTime)

		// A size without a reported speedup contributes the neutral factor
		// 1.0 to the mean.
		if speedup, reported := record[common.MetricSpeedup]; reported {
			speedups = append(speedups, speedup)
		} else {
			speedups = append(speedups, 1.0)
		}
	}

	if len(times) == 0 {
		return common.BackendSummary{}, false
	}

	return common.BackendSummary{
		MinTimeMs:  floats.Min(times),
		MaxTimeMs:  floats.Max(times),
		AvgSpeedup: stat.Mean(speedups, nil),
	}, true
}
