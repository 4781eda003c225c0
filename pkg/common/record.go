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

package common

// MetricRecord holds the measured and derived values for one (backend, size)
// pair, keyed by metric name. A successful run whose output matched nothing
// yields an empty record; a failed or timed out run yields no record at all.
type MetricRecord map[string]float64

// Metric names reported by the reference backend.
const (
	MetricMultiplyTimeMs   = "multiply_time_ms"
	MetricOperationsTimeMs = "operations_time_ms"
	MetricGflops           = "gflops"
)

// Metric names reported by external backends.
const (
	MetricNaiveTimeMs     = "naive_time_ms"
	MetricOptimizedTimeMs = "optimized_time_ms"
	MetricSpeedup         = "speedup"
	MetricIsaTimeMs       = "isa_optimized_time_ms"
	MetricIsaSpeedup      = "isa_speedup"
)

// ReferenceBackendName identifies the in-process gonum backend in results
// and reports.
const ReferenceBackendName = "gonum"

// BackendSummary holds per-backend scalar statistics computed over the sizes
// with usable measurements. AvgGflops is set for the reference backend,
// AvgSpeedup for external ones.
type BackendSummary struct {
	MinTimeMs  float64 `json:"min_time_ms"`
	MaxTimeMs  float64 `json:"max_time_ms"`
	AvgGflops  float64 `json:"avg_gflops,omitempty"`
	AvgSpeedup float64 `json:"avg_speedup,omitempty"`
}

// BenchmarkReport is the persisted report document, assembled once after all
// runs complete and written as a whole.
type BenchmarkReport struct {
	Timestamp   string                    `json:"timestamp"`
	RunID       string                    `json:"run_id"`
	MatrixSizes []int                     `json:"matrix_sizes"`
	Results     *BenchmarkResult          `json:"results"`
	Summary     map[string]BackendSummary `json:"summary"`
}

// SizeRecord is the flat per-(backend, size) row exported to CSV alongside
// the JSON report. Metrics a backend did not report stay at zero.
type SizeRecord struct {
	Backend          string  `csv:"backend"`
	Size             int     `csv:"size"`
	MultiplyTimeMs   float64 `csv:"multiply_time_ms"`
	OperationsTimeMs float64 `csv:"operations_time_ms"`
	Gflops           float64 `csv:"gflops"`
	NaiveTimeMs      float64 `csv:"naive_time_ms"`
	OptimizedTimeMs  float64 `csv:"optimized_time_ms"`
	Speedup          float64 `csv:"speedup"`
	IsaTimeMs        float64 `csv:"isa_optimized_time_ms"`
	IsaSpeedup       float64 `csv:"isa_speedup"`
}
