// Command report generates a delivery analysis report from the command
// line without starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"deliverypulse/internal/config"
	"deliverypulse/internal/dataset"
	"deliverypulse/internal/infrastructure"
	"deliverypulse/internal/report"
	"deliverypulse/internal/services"
)

func main() {
	dataFile := flag.String("data", "", "path to the delivery CSV (overrides configuration)")
	outDir := flag.String("out", "", "output directory (overrides configuration)")
	formatFlag := flag.String("format", "pdf", "report format: pdf, docx or xlsx")
	platform := flag.String("platform", "", "restrict the report to one platform")
	category := flag.String("category", "", "restrict the report to one product category")
	flag.Parse()

	if err := run(*dataFile, *outDir, *formatFlag, *platform, *category); err != nil {
		fmt.Fprintf(os.Stderr, "report failed: %v\n", err)
		os.Exit(1)
	}
}

func run(dataFile, outDir, formatFlag, platform, category string) error {
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataFile != "" {
		cfg.Paths.DataFile = dataFile
	}
	if outDir != "" {
		cfg.Paths.ReportsDir = outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	ds, err := dataset.Load(cfg.Paths.DataFile, logger)
	if err != nil {
		return err
	}

	data := services.NewDataService(ds, logger)
	reports := services.NewReportService(data, cfg.Paths.ReportsDir, logger)

	filter := dataset.Filter{Platform: platform, Category: category}
	info, err := reports.Generate(context.Background(), filter, format)
	if err != nil {
		return err
	}

	logger.Info("report generated",
		slog.String("path", info.Path),
		slog.Int64("bytes", info.Size))
	fmt.Println(info.Path)
	return nil
}
