package config

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
)

// DefaultMatrixSizes is used when the configuration file lists no sizes.
var DefaultMatrixSizes = []int{64, 128, 256, 512}

const DefaultTimeoutSeconds = 60

// BackendDescriptor names one external backend and the filesystem path of its
// compiled artifact.
type BackendDescriptor struct {
	Name string `json:"Name"`
	Path string `json:"Path"`
}

type BenchmarkConfiguration struct {
	Seed int64 `json:"Seed"`

	MatrixSizes []int               `json:"MatrixSizes"`
	Backends    []BackendDescriptor `json:"Backends"`

	TimeoutSeconds int `json:"TimeoutSeconds"`

	OutputPathPrefix string `json:"OutputPathPrefix"`
	PlotDirectory    string `json:"PlotDirectory"`
	EnablePlots      bool   `json:"EnablePlots"`
}

func ReadConfigurationFile(path string) BenchmarkConfiguration {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	var config BenchmarkConfiguration
	err = json.Unmarshal(byteValue, &config)
	if err != nil {
		log.Fatal(err)
	}

	config.applyDefaults()

	return config
}

func (c *BenchmarkConfiguration) applyDefaults() {
	if len(c.MatrixSizes) == 0 {
		c.MatrixSizes = append(c.MatrixSizes, DefaultMatrixSizes...)
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.OutputPathPrefix == "" {
		c.OutputPathPrefix = "data/out/matrix_benchmark"
	}
	if c.PlotDirectory == "" {
		c.PlotDirectory = "data/plots"
	}
}
