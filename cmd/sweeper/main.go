package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loopinhq/backend/internal/bootstrap"
	"github.com/loopinhq/backend/internal/pkg/helpers"
	"github.com/loopinhq/backend/internal/pkg/logger"
)

// The sweeper runs the expired-event archival sweep on an interval. It
// shares the API's configuration and database but runs as its own
// process, so a slow sweep never competes with request handling.
func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer dbPool.Close()

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup dependencies")
		os.Exit(1)
	}

	interval := helpers.ParseDuration(cfg.Sweeper.Interval, time.Hour)
	lgr.Info().Dur("interval", interval).Msg("Sweeper started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runSweep(ctx, deps)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runSweep(ctx, deps)
		case <-ctx.Done():
			lgr.Info().Msg("Sweeper shutting down")
			return
		}
	}
}

func runSweep(ctx context.Context, deps *bootstrap.Dependencies) {
	sweepCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	result, err := deps.ArchiveService.Sweep(sweepCtx)
	if err != nil {
		deps.Logger.Error().Err(err).Msg("Sweep run failed")
		return
	}

	deps.Logger.Info().
		Int("scanned", result.Scanned).
		Int("archived", result.Archived).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("Sweep run finished")
}
