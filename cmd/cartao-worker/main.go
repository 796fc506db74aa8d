package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"cartao/internal/amqp"
	"cartao/internal/cli"
	applog "cartao/internal/log"
	"cartao/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting cartao-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The worker exists to keep the CSV snapshot current, so the broker
	// is mandatory here, unlike in the API process.
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the snapshot worker")
		os.Exit(1)
	}

	result := cli.InitBackend(context.Background(), logger, cfg)
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	snapshotWorker := worker.NewSnapshotWorker(result.Store, cfg.ExportDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Rebuild once on startup so a fresh deployment has a snapshot
	// before the first event or tick arrives.
	if err := snapshotWorker.WriteSnapshot(ctx); err != nil {
		logger.Error("Startup snapshot failed", "error", err)
		// Don't exit - continue with normal operation
	} else {
		logger.Info("Startup snapshot written", "path", snapshotWorker.SnapshotPath())
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeEvents(ctx, func(msg *amqp.LedgerEventMessage) error {
			return snapshotWorker.HandleEvent(ctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SnapshotInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := snapshotWorker.WriteSnapshot(ctx); err != nil {
					logger.Error("Periodic snapshot failed", "error", err)
				}
			}
		}
	})

	logger.Info("Worker running",
		"queue", cfg.AMQPQueue,
		"snapshot_interval", cfg.SnapshotInterval.String(),
		"export_dir", cfg.ExportDir)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
