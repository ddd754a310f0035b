// Command ceabload loads CEAB measurement workbooks, reports diagnostics,
// and exports the combined dataset as CSV files.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"ceabcli/internal/config"
	"ceabcli/internal/dataprocessing"
	"ceabcli/internal/exporter"
	"ceabcli/internal/infrastructure"
	"ceabcli/internal/validation"
)

func main() {
	inPath := flag.String("in", "", "workbook file, or root directory when -pattern is set (defaults to configured data dir)")
	pattern := flag.String("pattern", "", "regular expression matched against the start of file paths relative to -in")
	outDir := flag.String("out", "", "output directory for CSV files (defaults to configured reports dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *inPath == "" {
		*inPath = cfg.Paths.DataDir
	}
	if *pattern == "" {
		*pattern = cfg.Load.Pattern
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	ctx := infrastructure.WithRunID(context.Background())

	loader := dataprocessing.NewLoader(logger, dataprocessing.LoaderConfig{Workers: cfg.Load.Workers})
	diags := validation.NewDiagnostics(logger)

	ds, err := loader.LoadTree(ctx, *inPath, *pattern, diags)
	if err != nil {
		logger.ErrorContext(ctx, "Load failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Load complete",
		slog.Int("instructors", len(ds.Instructors)),
		slog.Int("courses", len(ds.Courses)),
		slog.Int("measurements", len(ds.Measurements)),
		slog.Int("data_points", len(ds.DataPoints)),
		slog.Int("warnings", diags.Len()))

	if err := exporter.NewCSVWriter(*outDir, logger).WriteDataset(ds); err != nil {
		logger.ErrorContext(ctx, "Export failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Export complete", slog.String("out_dir", *outDir))
}
