package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"vainspect/internal/config"
	"vainspect/internal/infrastructure"
	"vainspect/internal/pipeline"
	"vainspect/pkg/contracts"
)

func main() {
	inDir := flag.String("in", "", "input directory for yearly .xlsx workbooks (defaults to data/sources relative to executable)")
	outDir := flag.String("out", "", "output directory for dataset artifacts (defaults to data/reports relative to executable)")
	rebuild := flag.Bool("rebuild", false, "ignore the cached artifact and rebuild from the raw yearly workbooks")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *inDir != "" {
		paths.SetSourcesDir(*inDir)
	}
	if *outDir != "" {
		paths.SetReportsDir(*outDir)
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:    "info",
				Format:   "json",
				Output:   "both",
				FilePath: paths.GetLogPath("pipeline.log"),
			},
			Pipeline: config.PipelineConfig{
				Years: []int{2022, 2023, 2024, 2025},
				TopN:  10,
			},
		}
	}
	if cfg.Logging.FilePath == "logs/pipeline.log" {
		cfg.Logging.FilePath = paths.GetLogPath("pipeline.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	logger.Info("Starting inspection dataset build",
		slog.String("version", contracts.Version),
		slog.String("sources_dir", paths.SourcesDir),
		slog.String("reports_dir", paths.ReportsDir),
		slog.Bool("rebuild", *rebuild),
		slog.Any("years", cfg.Pipeline.Years))

	start := time.Now()
	p := pipeline.New(cfg, paths, logger)
	ds, err := p.Run(context.Background(), pipeline.Options{Rebuild: *rebuild})
	if err != nil {
		logger.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Dataset build finished",
		slog.Int("records", ds.Len()),
		slog.Duration("elapsed", time.Since(start)),
		slog.String("csv", paths.CleanDataCSV),
		slog.String("parquet", paths.CleanDataParquet),
		slog.String("chart", paths.ZipChartHTML))
}
