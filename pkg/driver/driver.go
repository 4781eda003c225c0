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

package driver

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/eth-easl/matbench/pkg/common"
	"github.com/eth-easl/matbench/pkg/config"
	"github.com/eth-easl/matbench/pkg/metric"
	"github.com/eth-easl/matbench/pkg/plotter"
	"github.com/eth-easl/matbench/pkg/runner"
)

type DriverConfiguration struct {
	MatrixSizes []int
	Backends    []config.BackendDescriptor
	Timeout     time.Duration
	Seed        int64

	OutputPathPrefix string
	PlotDirectory    string
	EnablePlots      bool
}

// Driver owns the canonical BenchmarkResult while the run is in flight. All
// measured work executes sequentially on this goroutine so that no two timed
// intervals ever contend for the same cores.
type Driver struct {
	cfg *DriverConfiguration
}

func NewDriver(cfg *DriverConfiguration) *Driver {
	return &Driver{cfg: cfg}
}

// RunBenchmark drives the full size x backend matrix, then aggregates,
// persists and plots. Failures below this level are scoped to a single
// (backend, size) pair; failures of the downstream steps are reported but do
// not invalidate the assembled result, which is always returned.
func (d *Driver) RunBenchmark() *common.BenchmarkReport {
	result := common.NewBenchmarkResult()

	d.runReference(result)
	for _, descriptor := range d.cfg.Backends {
		d.runExternal(descriptor, result)
	}

	summary := metric.Summarize(result)
	report := metric.NewReport(d.cfg.MatrixSizes, result, summary)

	if err := metric.WriteReport(report, d.cfg.OutputPathPrefix+"_report.json"); err != nil {
		log.Errorf("Failed to write the report: %v", err)
	}
	if err := metric.WriteRecords(result, d.cfg.OutputPathPrefix+"_records.csv"); err != nil {
		log.Errorf("Failed to write the per-size records: %v", err)
	}
	if d.cfg.EnablePlots {
		if err := plotter.RenderAll(d.cfg.PlotDirectory, result); err != nil {
			log.Errorf("Failed to render one or more plots: %v", err)
		}
	}

	logSummary(report)

	return report
}

// runReference always runs, across all configured sizes. A failure is fatal
// for that single size only.
func (d *Driver) runReference(result *common.BenchmarkResult) {
	reference := runner.NewReferenceRunner(d.cfg.Seed)

	for _, size := range d.cfg.MatrixSizes {
		log.Infof("Benchmarking %s for %dx%d matrices", common.ReferenceBackendName, size, size)

		record, err := reference.Run(size)
		if err != nil {
			log.Errorf("Reference backend failed for size %d: %v", size, err)
			continue
		}
		result.Record(common.ReferenceBackendName, size, record)
	}
}

// runExternal runs one external backend across all sizes, or skips it
// entirely when its artifact does not exist.
func (d *Driver) runExternal(descriptor config.BackendDescriptor, result *common.BenchmarkResult) {
	external := runner.NewExternalRunner(descriptor.Name, descriptor.Path, d.cfg.Timeout)

	if !external.ArtifactAvailable() {
		log.Infof("Backend %s: artifact not found at %s - skipping", descriptor.Name, descriptor.Path)
		return
	}

	for _, size := range d.cfg.MatrixSizes {
		log.Infof("Benchmarking %s for %dx%d matrices", descriptor.Name, size, size)

		invocation := external.Run(size)
		switch invocation.Outcome {
		case runner.Completed:
			result.Record(descriptor.Name, size, invocation.Metrics)
		case runner.TimedOut:
			log.Warnf("Backend %s timed out for size %d", descriptor.Name, size)
		case runner.Failed:
			log.Warnf("Backend %s failed for size %d: %s", descriptor.Name, size, invocation.Diagnostic)
		}
	}
}

func logSummary(report *common.BenchmarkReport) {
	log.Info("==== MATRIX BENCHMARK SUMMARY ====")

	for _, backend := range report.Results.Backends() {
		log.Infof("%s results:", backend)

		for _, size := range report.Results.Sizes(backend) {
			record, _ := report.Results.Get(backend, size)

			if backend == common.ReferenceBackendName {
				log.Infof("  %dx%d: %.2f ms (%.2f GFLOPS)",
					size, size, record[common.MetricMultiplyTimeMs], record[common.MetricGflops])
				continue
			}

			speedup, reported := record[common.MetricSpeedup]
			if !reported {
				speedup = 1.0
			}
			log.Infof("  %dx%d: %.2f ms (%.2fx speedup)",
				size, size, record[common.MetricOptimizedTimeMs], speedup)
		}
	}
}
