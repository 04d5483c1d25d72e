package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/budget"
	budgetStore "github.com/davidtadediji/money-tracker-mobile-sub002/internal/budget/store"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/clock"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/config"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/database"
	appHttp "github.com/davidtadediji/money-tracker-mobile-sub002/internal/http"
	budgetHandler "github.com/davidtadediji/money-tracker-mobile-sub002/internal/http/budget"
	ledgerHandler "github.com/davidtadediji/money-tracker-mobile-sub002/internal/http/ledger"
	recurringHandler "github.com/davidtadediji/money-tracker-mobile-sub002/internal/http/recurring"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
	ledgerStore "github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger/store"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/recurring"
	recurringStore "github.com/davidtadediji/money-tracker-mobile-sub002/internal/recurring/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	clk := clock.System()

	var (
		ledgerService    = ledger.NewService(ledgerStore.New(db))
		recurringService = recurring.NewService(recurringStore.New(db), ledgerService, clk)
		budgetService    = budget.NewService(budgetStore.New(db), ledgerService, clk)
	)

	var (
		entriesH   = ledgerHandler.NewHandler(ledgerService)
		recurringH = recurringHandler.NewHandler(recurringService)
		budgetsH   = budgetHandler.NewHandler(budgetService)
	)

	router := appHttp.New(cfg.Auth.JWTSecret, entriesH, recurringH, budgetsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
