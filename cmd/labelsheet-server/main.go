package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gompdf/labelsheet/internal/config"
	"github.com/gompdf/labelsheet/internal/logger"
	"github.com/gompdf/labelsheet/internal/server"
	"github.com/gompdf/labelsheet/pkg/api"
	"go.uber.org/zap"
)

// Version info (set during build)
var Version = "dev"

func main() {
	configFile := flag.String("config", "", "Config file path (default: ./labelsheet.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts, err := cfg.GeneratorOptions()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	opts.Logger = log.Named("generator")

	// Fail at startup rather than on the first request if the work directory is unusable.
	if err := os.MkdirAll(opts.WorkDir, 0755); err != nil {
		log.Fatal("failed to create work directory", zap.String("dir", opts.WorkDir), zap.Error(err))
	}

	h := server.NewHandler(api.NewWithOptions(opts), server.Defaults{
		Location: cfg.Generate.DefaultLocation,
		Count:    cfg.Generate.DefaultCount,
	}, Version, log)
	e := server.New(h, log.Named("http"), cfg.Server.RequestLogging, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.Addr()), zap.String("version", Version))
		if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
