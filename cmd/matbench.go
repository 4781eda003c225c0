package main

import (
	"flag"
	"os"
	"time"

	"github.com/eth-easl/matbench/pkg/config"
	"github.com/eth-easl/matbench/pkg/driver"

	log "github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "cmd/config.json", "Path to benchmark configuration file")
	verbosity  = flag.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace]")
	noPlots    = flag.Bool("noPlots", false, "Skip chart rendering regardless of configuration")
)

func init() {
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.StampMilli,
		FullTimestamp:   true,
	})
	log.SetOutput(os.Stdout)

	switch *verbosity {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "trace":
		log.SetLevel(log.TraceLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	cfg := config.ReadConfigurationFile(*configPath)

	if len(cfg.Backends) == 0 {
		log.Warn("No external backends configured - only the reference backend will run.")
	}
	if *noPlots {
		cfg.EnablePlots = false
	}

	benchmarkDriver := driver.NewDriver(&driver.DriverConfiguration{
		MatrixSizes: cfg.MatrixSizes,
		Backends:    cfg.Backends,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		Seed:        cfg.Seed,

		OutputPathPrefix: cfg.OutputPathPrefix,
		PlotDirectory:    cfg.PlotDirectory,
		EnablePlots:      cfg.EnablePlots,
	})

	benchmarkDriver.RunBenchmark()
}
