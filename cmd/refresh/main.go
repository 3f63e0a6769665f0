// Command refresh rebuilds the merged match dataset once and exits. It is
// intended for cron jobs and first-time setup.
package main

import (
	"context"
	"os"
	"time"

	"github.com/matchscreener/matchscreener/internal/app"
	"github.com/matchscreener/matchscreener/internal/config"
	"github.com/matchscreener/matchscreener/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	svcs, err := app.BuildServices(cfg, logger)
	if err != nil {
		logger.Error("build services", "error", err)
		os.Exit(1)
	}
	defer svcs.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := svcs.Refresh.Refresh(ctx)
	if err != nil {
		logger.Error("dataset refresh failed", "error", err)
		os.Exit(1)
	}

	logger.Info("dataset refreshed",
		"rows", result.Records,
		"season", result.SeasonCode,
		"path", cfg.DataPath,
	)
}
