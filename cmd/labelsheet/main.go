package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gompdf/labelsheet"
	"github.com/gompdf/labelsheet/internal/config"
	"github.com/gompdf/labelsheet/internal/logger"
	"go.uber.org/zap"
)

func main() {
	var (
		configFile string
		location   string
		count      int
		outputFile string
		rows       int
		keep       bool
		verbose    bool
	)

	flag.StringVar(&configFile, "config", "", "Config file path (default: ./labelsheet.yaml if present)")
	flag.StringVar(&location, "location", "", "Location prefix of every label (default from config)")
	flag.IntVar(&count, "count", -1, "Number of labels (default from config)")
	flag.StringVar(&outputFile, "output", "generated_barcodes.pdf", "Output PDF file path")
	flag.IntVar(&rows, "rows", 0, "Labels per page (default from config)")
	flag.BoolVar(&keep, "keep", false, "Keep the barcode images after generation")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := &logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	if verbose {
		logCfg.Level = "debug"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if location == "" {
		location = cfg.Generate.DefaultLocation
	}
	if count < 0 {
		count = cfg.Generate.DefaultCount
	}

	opts, err := cfg.GeneratorOptions()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	opts.Logger = log
	if rows > 0 {
		opts.RowsPerPage = rows
	}
	if keep {
		opts.KeepArtifacts = true
	}

	summary, err := labelsheet.NewWithOptions(opts).GenerateToFile(location, count, outputFile)
	if err != nil {
		fmt.Printf("Error generating %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d labels on %d pages", outputFile, len(summary.Placements), summary.Pages)
	if n := len(summary.Skipped); n > 0 {
		fmt.Printf(", %d skipped", n)
	}
	fmt.Println()
	if verbose {
		for _, s := range summary.Skipped {
			fmt.Printf("  skipped %s: %s\n", s.Code, s.Reason)
		}
	}
}
