// Command mnist-sample-export draws ten MNIST test images at random and writes
// each as data/single_image_label_{label}_{n}.csv plus a JPEG preview.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/YuminosukeSato/mnistexport/dataset"
	"github.com/YuminosukeSato/mnistexport/export"
	"github.com/YuminosukeSato/mnistexport/pkg/log"
	"github.com/YuminosukeSato/mnistexport/preview"
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

	test, err := provider.LoadTest(ctx)
	if err != nil {
		logger.Error("Failed to load test split", err, log.PathKey, cfg.DatasetDir)
		return err
	}

	seed := uint64(time.Now().UnixNano())
	logger.Debug("Sampling", log.RandomSeedKey, seed)
	rng := rand.New(rand.NewPCG(seed, seed>>32|seed<<32))

	exporter, err := export.NewSampleExporter(cfg, preview.NewJPEGRenderer(), rng, os.Stdout, logger)
	if err != nil {
		logger.Error("Invalid configuration", err)
		return err
	}
	draws, err := exporter.Export(ctx, test)
	if err != nil {
		logger.Error("Sample export failed", err, log.DrawKey, len(draws)+1)
		return err
	}

	logger.Info("Samples exported",
		log.SamplesKey, len(draws),
		log.PathKey, cfg.OutputDir,
	)
	return nil
}
