package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/pkg/config"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/pkg/db"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/pkg/service"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(featuredSeeds))
}

// run returns the process exit code, so deferred cleanup happens before exit.
func run(targets []service.Target) int {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := service.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DryRun {
		logger.Info("Running in DRY_RUN mode - manifest will not be written")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var database db.Database
	if cfg.DatabaseEnabled() {
		database, err = db.NewDatabase(ctx, logger, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return 1
		}
		defer func() {
			if err := database.Close(context.Background()); err != nil {
				logger.Warn("Error closing database connection", zap.Error(err))
			}
		}()
	}

	adjustments, err := service.RunReorder(ctx, logger, cfg, database, targets, os.Stdout)
	if err != nil {
		logger.Error("Failed to reorder seeds", zap.Error(err))
		return 1
	}

	logger.Info("done", zap.Int("adjusted", len(adjustments)))
	return 0
}
