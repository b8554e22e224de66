// Command mnist-verify reads the files written by mnist-bulk-export and
// mnist-sample-export back and checks them against the MNIST splits.
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

	train, err := provider.LoadTraining(ctx)
	if err != nil {
		logger.Error("Failed to load training split", err, log.PathKey, cfg.DatasetDir)
		return err
	}
	test, err := provider.LoadTest(ctx)
	if err != nil {
		logger.Error("Failed to load test split", err, log.PathKey, cfg.DatasetDir)
		return err
	}

	verifier, err := export.NewVerifier(cfg, logger)
	if err != nil {
		logger.Error("Invalid configuration", err)
		return err
	}
	report, err := verifier.Verify(ctx, train, test)
	if err != nil {
		logger.Error("Verification failed", err)
		return err
	}

	fmt.Println(report.String())
	return nil
}
