package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/repository/mongodb"
	"github.com/mamadbah2/warehouse/internal/repository/sheets"
	"github.com/mamadbah2/warehouse/internal/scheduler"
	"github.com/mamadbah2/warehouse/internal/server/handlers"
	"github.com/mamadbah2/warehouse/internal/server/router"
	authsvc "github.com/mamadbah2/warehouse/internal/service/auth"
	catalogsvc "github.com/mamadbah2/warehouse/internal/service/catalog"
	reportingsvc "github.com/mamadbah2/warehouse/internal/service/reporting"
	stocksvc "github.com/mamadbah2/warehouse/internal/service/stock"
	whatsappsvc "github.com/mamadbah2/warehouse/internal/service/whatsapp"
	"github.com/mamadbah2/warehouse/pkg/clients/inventory"
	whatsappclient "github.com/mamadbah2/warehouse/pkg/clients/whatsapp"
	"github.com/mamadbah2/warehouse/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	inventoryClient := inventory.NewClient(cfg.Inventory)
	baseLogger.Info("inventory api configured",
		zap.String("base_url", cfg.Inventory.BaseURL),
		zap.String("statistics_url", cfg.Inventory.StatisticsURL))

	var journal mongodb.Repository
	if cfg.MongoDB.URI != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		journal = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI missing, adjustment journal and snapshots disabled")
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Warn("google sheets credentials missing, inventory export disabled")
	}

	authService := authsvc.NewService(inventoryClient, logger.Named(baseLogger, "svc.auth"))
	catalogService := catalogsvc.NewService(inventoryClient, logger.Named(baseLogger, "svc.catalog"))
	stockService := stocksvc.NewService(inventoryClient, journal, logger.Named(baseLogger, "svc.stock"))
	reportingService := reportingsvc.NewService(inventoryClient, sheetsRepo, journal, reportingsvc.Options{
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		ExportRange:       cfg.Sheets.InventoryRange,
	}, logger.Named(baseLogger, "svc.reporting"))

	var whatsClient whatsappclient.Client
	if cfg.WhatsApp.Enabled() {
		whatsClient = whatsappclient.NewClient(cfg.WhatsApp)
		baseLogger.Info("whatsapp messaging enabled", zap.Bool("alerts", cfg.WhatsApp.AlertsEnabled()))
	} else {
		baseLogger.Warn("whatsapp credentials missing, messaging and low stock alerts disabled")
	}
	messagingService := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, reportingService, logger.Named(baseLogger, "svc.whatsapp"))

	engine := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(authService, logger.Named(baseLogger, "handlers.auth")),
		Products: handlers.NewProductHandler(catalogService, stockService, logger.Named(baseLogger, "handlers.products")),
		Reports:  handlers.NewReportHandler(reportingService, messagingService, logger.Named(baseLogger, "handlers.reports")),
	}, logger.Named(baseLogger, "router"))

	jobs := scheduler.Jobs{}
	if sheetsRepo != nil {
		jobs.Exporter = reportingService
	}
	if journal != nil {
		jobs.Snapshotter = reportingService
	}
	if whatsClient != nil && cfg.WhatsApp.AlertsEnabled() {
		jobs.Alerter = messagingService
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, jobs, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
