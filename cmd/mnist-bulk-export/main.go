// Command mnist-bulk-export writes the MNIST training split to
// data/train_data.csv (784×60000) and data/train_labels.csv (10×60000).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/YuminosukeSato/mnistexport/dataset"
	"github.com/YuminosukeSato/mnistexport/export"
	"github.com/YuminosukeSato/mnistexport/pkg/log"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := export.DefaultConfig()

	logger, err := log.SetupLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	provider := dataset.NewFileProvider(cfg.DatasetDir)
	provider.Logger = logger

	// データ読み込み
	train, err := provider.LoadTraining(ctx)
	if err != nil {
		logger.Error("Failed to load training split", err, log.PathKey, cfg.DatasetDir)
		return err
	}

	exporter, err := export.NewBulkExporter(cfg, logger)
	if err != nil {
		logger.Error("Invalid configuration", err)
		return err
	}
	if err := exporter.Export(ctx, train); err != nil {
		logger.Error("Bulk export failed", err)
		return err
	}

	logger.Info("Training data exported",
		log.SamplesKey, train.Len(),
		log.PathKey, cfg.OutputDir,
	)
	return nil
}
