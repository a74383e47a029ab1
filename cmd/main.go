package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sweeply/internal/auth"
	"sweeply/internal/bootstrap"
	"sweeply/internal/config"
	cronpkg "sweeply/internal/cron"
	"sweeply/internal/handler/api"
	"sweeply/internal/middleware"
	"sweeply/internal/notify"
	"sweeply/internal/repository"
	"sweeply/internal/router"
	"sweeply/internal/service"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if hasArg("--bootstrap-db") {
		if err := runDBBootstrap(logger); err != nil {
			logger.Fatal("Database bootstrap failed", zap.Error(err))
		}
		logger.Info("Database bootstrap completed")
		return
	}

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.MigrateAndSeed(db); err != nil {
		logger.Fatal("Failed to bootstrap database schema", zap.Error(err))
	}

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true

	// --- Request Deduper (Redis with in-memory fallback) ---
	deduper, dedupeErr := middleware.NewRequestDeduper(
		cfg.Redis.Addr,
		cfg.Redis.Pass,
		cfg.Redis.DB,
		24*time.Hour,
	)
	if dedupeErr != nil {
		logger.Warn("Redis unavailable for idempotency keys, using in-memory fallback", zap.Error(dedupeErr))
	}

	// --- Auth ---
	tokens := auth.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// --- Services ---
	jobRepo := repository.NewJobRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	rateRepo := repository.NewServiceRateRepository(db)

	var notifier service.StatusNotifier
	if cfg.Notify.Enabled && cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL)
	}

	services := &api.Services{
		Series:    service.NewSeriesManager(jobRepo, notifier, cfg.Schedule.HorizonMonths, logger),
		Invoices:  service.NewInvoiceService(invoiceRepo, jobRepo, logger),
		Estimator: service.NewEstimator(rateRepo),
	}

	// --- Routes ---
	router.Setup(e, db, tokens, services, deduper, logger)

	// --- Cron Scheduler ---
	scheduler := cronpkg.New(cfg, services.Series, services.Invoices, repository.NewAPILogRepository(db), logger)
	scheduler.Start()

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting Sweeply server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	// Stop cron
	ctx := scheduler.Stop()
	<-ctx.Done()

	// Stop HTTP server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func hasArg(name string) bool {
	for _, arg := range os.Args[1:] {
		if arg == name {
			return true
		}
	}
	return false
}

func runDBBootstrap(logger *zap.Logger) error {
	dbCfg, err := config.LoadDatabaseOnly()
	if err != nil {
		return err
	}
	db, err := config.NewDatabase(dbCfg)
	if err != nil {
		return err
	}
	if err := bootstrap.MigrateAndSeed(db); err != nil {
		return err
	}
	logger.Info("Schema migration and default seed completed")
	return nil
}
