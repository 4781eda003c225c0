// Package plotter renders the comparison charts for a finished benchmark run:
// a log-log scaling plot, a GFLOPS plot and speedup bar charts.
package plotter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/eth-easl/matbench/pkg/common"
)

// RenderAll renders every chart into outputDir, creating it if needed. A
// chart that cannot be rendered (e.g. no data for it) is logged and skipped;
// the first such error is returned after the remaining charts were attempted.
func RenderAll(outputDir string, result *common.BenchmarkResult) error {
	if _, err := os.Stat(outputDir); errors.Is(err, os.ErrNotExist) {
		log.Info("Creating the plot output directory")
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return err
		}
	}

	charts := []struct {
		file   string
		render func(string, *common.BenchmarkResult) error
	}{
		{"performance_scaling.png", plotPerformanceScaling},
		{"gflops_comparison.png", plotGflopsComparison},
		{"speedup_analysis.png", plotSpeedup},
		{"isa_speedup_analysis.png", plotIsaSpeedup},
	}

	var firstErr error
	for _, chart := range charts {
		if err := chart.render(filepath.Join(outputDir, chart.file), result); err != nil {
			log.Warnf("Skipping %s: %v", chart.file, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr == nil {
		log.Infof("Performance plots saved to %s", outputDir)
	}
	return firstErr
}

func plotPerformanceScaling(path string, result *common.BenchmarkResult) error {
	p := plot.New()
	p.Title.Text = "Matrix Multiplication Performance Scaling"
	p.X.Label.Text = "Matrix Size (NxN)"
	p.Y.Label.Text = "Execution Time (ms)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	var series []interface{}
	for _, backend := range result.Backends() {
		timeMetric := common.MetricOptimizedTimeMs
		if backend == common.ReferenceBackendName {
			timeMetric = common.MetricMultiplyTimeMs
		}
		points := seriesXY(result, backend, timeMetric)
		if len(points) == 0 {
			continue
		}
		series = append(series, backend, points)
	}
	if len(series) == 0 {
		return errors.New("no timing data to plot")
	}

	if err := plotutil.AddLinePoints(p, series...); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func plotGflopsComparison(path string, result *common.BenchmarkResult) error {
	p := plot.New()
	p.Title.Text = "Matrix Multiplication Performance (GFLOPS)"
	p.X.Label.Text = "Matrix Size (NxN)"
	p.Y.Label.Text = "Performance (GFLOPS)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	var series []interface{}
	for _, backend := range result.Backends() {
		var points plotter.XYs
		if backend == common.ReferenceBackendName {
			points = seriesXY(result, backend, common.MetricGflops)
		} else {
			points = derivedGflopsXY(result, backend)
		}
		if len(points) == 0 {
			continue
		}
		series = append(series, backend, points)
	}
	if len(series) == 0 {
		return errors.New("no throughput data to plot")
	}

	if err := plotutil.AddLinePoints(p, series...); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func plotSpeedup(path string, result *common.BenchmarkResult) error {
	return plotSpeedupBars(path, result, common.MetricSpeedup, "Cache Optimization Speedup")
}

func plotIsaSpeedup(path string, result *common.BenchmarkResult) error {
	return plotSpeedupBars(path, result, common.MetricIsaSpeedup, "ISA Optimization Speedup")
}

func plotSpeedupBars(path string, result *common.BenchmarkResult, speedupMetric string, title string) error {
	sizes := externalSizeUnion(result)
	if len(sizes) == 0 {
		return errors.New("no external backend data to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Matrix Size"
	p.Y.Label.Text = "Speedup Factor"

	barWidth := vg.Points(18)
	added := 0

	for _, backend := range result.Backends() {
		if backend == common.ReferenceBackendName {
			continue
		}

		values := make(plotter.Values, len(sizes))
		hasData := false
		for i, size := range sizes {
			record, present := result.Get(backend, size)
			if !present {
				continue
			}
			if speedup, reported := record[speedupMetric]; reported {
				values[i] = speedup
				hasData = true
			}
		}
		if !hasData {
			continue
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(added)
		bars.Offset = vg.Length(added) * barWidth
		p.Add(bars)
		p.Legend.Add(backend, bars)
		added++
	}
	if added == 0 {
		return fmt.Errorf("no %s data to plot", speedupMetric)
	}

	labels := make([]string, len(sizes))
	for i, size := range sizes {
		labels[i] = fmt.Sprintf("%dx%d", size, size)
	}
	p.NominalX(labels...)
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// seriesXY extracts (size, metric) points for one backend, ascending by size.
// Sizes lacking the metric are left out of the series rather than plotted as
// zeros, which a log scale cannot represent anyway.
func seriesXY(result *common.BenchmarkResult, backend string, metricName string) plotter.XYs {
	var points plotter.XYs
	for _, size := range result.Sizes(backend) {
		record, present := result.Get(backend, size)
		if !present {
			continue
		}
		value, reported := record[metricName]
		if !reported || value <= 0 {
			continue
		}
		points = append(points, plotter.XY{X: float64(size), Y: value})
	}
	return points
}

// derivedGflopsXY computes external-backend throughput from the optimized
// time, since those backends report milliseconds only.
func derivedGflopsXY(result *common.BenchmarkResult, backend string) plotter.XYs {
	var points plotter.XYs
	for _, size := range result.Sizes(backend) {
		record, present := result.Get(backend, size)
		if !present {
			continue
		}
		timeMs, reported := record[common.MetricOptimizedTimeMs]
		if !reported || timeMs <= 0 {
			continue
		}
		n := float64(size)
		points = append(points, plotter.XY{X: n, Y: (2 * n * n * n) / (timeMs * 1e6)})
	}
	return points
}

func externalSizeUnion(result *common.BenchmarkResult) []int {
	seen := make(map[int]bool)
	for _, backend := range result.Backends() {
		if backend == common.ReferenceBackendName {
			continue
		}
		for _, size := range result.Sizes(backend) {
			seen[size] = true
		}
	}

	sizes := make([]int, 0, len(seen))
	for size := range seen {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}
