package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/clock"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/config"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/database"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
	ledgerStore "github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger/store"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/recurring"
	recurringStore "github.com/davidtadediji/money-tracker-mobile-sub002/internal/recurring/store"
)

// The scheduler materializes due recurring occurrences in the background so
// ledger entries exist even when nobody opens the app. Each run advances every
// due definition by at most one occurrence; definitions several periods
// behind catch up over successive runs, one entry per occurrence.
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ledgerService := ledger.NewService(ledgerStore.New(db))
	recurringService := recurring.NewService(recurringStore.New(db), ledgerService, clock.System())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("scheduler started", "interval", cfg.Scheduler.Interval)

	runOnce(ctx, recurringService, logger)

	ticker := time.NewTicker(cfg.Scheduler.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler shutting down")
			return
		case <-ticker.C:
			runOnce(ctx, recurringService, logger)
		}
	}
}

func runOnce(ctx context.Context, svc *recurring.Service, logger *slog.Logger) {
	processed, err := svc.ProcessDue(ctx)
	if err != nil {
		logger.Error("processing due definitions failed", "error", err)
		return
	}

	logger.Info("processed due definitions", "count", processed)
}
