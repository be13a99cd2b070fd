package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/can-finance/tradingclocks/internal/clock"
	"github.com/can-finance/tradingclocks/internal/config"
	"github.com/can-finance/tradingclocks/internal/httpapi"
	"github.com/can-finance/tradingclocks/internal/session"
	"github.com/can-finance/tradingclocks/internal/store"
	"github.com/can-finance/tradingclocks/internal/util"
)

func main() {
	cfgPath := "config/tradingclocks.yaml"
	if p := os.Getenv("CLOCKS_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = config.Default()
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File,
		cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	util.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	markets := config.LoadMarkets(ctx, cfg.Markets.File, logger)
	holidays := config.LoadHolidays(ctx, cfg.Markets.HolidaysFile, logger)
	logger.Info("loaded market data", "markets", len(markets))

	prefs, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		logger.Error("opening preference store", "path", cfg.Storage.SQLitePath, "error", err)
		os.Exit(1)
	}
	defer prefs.Close()

	clk := clock.New()
	classifier := session.NewClassifier(clk, holidays)

	api := httpapi.NewServer(markets, classifier, clk, prefs, logger)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("tradingclocks-server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "error", err)
	}
}
