package metric

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/eth-easl/matbench/pkg/common"
)

const reportTimestampFormat = "2006-01-02 15:04:05"

// NewReport assembles the report document from a finished run.
func NewReport(sizes []int, result *common.BenchmarkResult, summary map[string]common.BackendSummary) *common.BenchmarkReport {
	return &common.BenchmarkReport{
		Timestamp:   time.Now().Format(reportTimestampFormat),
		RunID:       uuid.New().String(),
		MatrixSizes: sizes,
		Results:     result,
		Summary:     summary,
	}
}

// WriteReport persists the report as a single JSON document. The document is
// marshalled in full before anything touches the filesystem; there are no
// incremental writes.
func WriteReport(report *common.BenchmarkReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return err
	}

	log.Infof("Detailed report saved to %s", path)
	return nil
}

// WriteRecords exports one flat CSV row per recorded (backend, size) pair.
func WriteRecords(result *common.BenchmarkResult, path string) error {
	records := FlattenRecords(result)

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&records, f)
}

// FlattenRecords orders rows by backend insertion order, then ascending size.
func FlattenRecords(result *common.BenchmarkResult) []common.SizeRecord {
	var rows []common.SizeRecord

	for _, backend := range result.Backends() {
		for _, size := range result.Sizes(backend) {
			record, _ := result.Get(backend, size)
			rows = append(rows, common.SizeRecord{
				Backend:          backend,
				Size:             size,
				MultiplyTimeMs:   record[common.MetricMultiplyTimeMs],
				OperationsTimeMs: record[common.MetricOperationsTimeMs],
				Gflops:           record[common.MetricGflops],
				NaiveTimeMs:      record[common.MetricNaiveTimeMs],
				OptimizedTimeMs:  record[common.MetricOptimizedTimeMs],
				Speedup:          record[common.MetricSpeedup],
				IsaTimeMs:        record[common.MetricIsaTimeMs],
				IsaSpeedup:       record[common.MetricIsaSpeedup],
			})
		}
	}

	return rows
}
