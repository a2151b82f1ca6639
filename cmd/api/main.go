package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sricodings/balashop/api/controllers"
	"github.com/sricodings/balashop/api/routes"
	authsvc "github.com/sricodings/balashop/internal/auth"
	dashsvc "github.com/sricodings/balashop/internal/dashboard"
	invsvc "github.com/sricodings/balashop/internal/inventory"
	"github.com/sricodings/balashop/internal/reports"
	salesvc "github.com/sricodings/balashop/internal/sales"
	"github.com/sricodings/balashop/internal/scheduler"
	settingsvc "github.com/sricodings/balashop/internal/settings"
	"github.com/sricodings/balashop/pkg/config"
	"github.com/sricodings/balashop/pkg/db"
	"github.com/sricodings/balashop/pkg/db/models"
	"github.com/sricodings/balashop/pkg/logger"
	"github.com/sricodings/balashop/pkg/mailer"
	"github.com/sricodings/balashop/pkg/metrics"
	"github.com/sricodings/balashop/pkg/migrate"
	"github.com/sricodings/balashop/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.UseSQLite {
		if err := dbClient.DB().AutoMigrate(models.Tables...); err != nil {
			logg.Error(ctx, "failed to migrate sqlite schema", err)
			os.Exit(1)
		}
	} else if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	reportMetrics := metrics.NewReportJobMetrics(registry)
	salesMetrics := metrics.NewSalesMetrics(registry)

	gormDB := dbClient.DB()

	settingsService, err := settingsvc.NewService(settingsvc.NewRepository(gormDB), dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create settings service", err)
		os.Exit(1)
	}
	if err := settingsService.SeedDefaults(ctx); err != nil {
		logg.Error(ctx, "failed to seed default settings", err)
		os.Exit(1)
	}

	salesRepo := salesvc.NewRepository(gormDB)
	salesService, err := salesvc.NewService(salesRepo, dbClient, salesMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create sales service", err)
		os.Exit(1)
	}

	inventoryService, err := invsvc.NewService(invsvc.NewRepository(gormDB), dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create inventory service", err)
		os.Exit(1)
	}

	dashboardService, err := dashsvc.NewService(gormDB, invsvc.LowStockThreshold)
	if err != nil {
		logg.Error(ctx, "failed to create dashboard service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(gormDB)
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(reports.NewRepository(gormDB), salesRepo, settingsService, mailer.NewSMTPMailer(), logg)
	if err != nil {
		logg.Error(ctx, "failed to create reports service", err)
		os.Exit(1)
	}

	snapshot, err := settingsService.Snapshot(ctx)
	if err != nil {
		logg.Error(ctx, "failed to read settings snapshot", err)
		os.Exit(1)
	}

	var dispatchLock scheduler.Lock
	if redisClient != nil {
		dispatchLock, err = scheduler.NewRedisLock(redisClient, redisClient.LockKey("report-dispatch"), cfg.Reports.LockTTL)
		if err != nil {
			logg.Error(ctx, "failed to create dispatch lock", err)
			os.Exit(1)
		}
	} else {
		dispatchLock = &scheduler.LocalLock{}
	}

	location := time.Local
	if cfg.Reports.Location != "" && cfg.Reports.Location != "Local" {
		location, err = time.LoadLocation(cfg.Reports.Location)
		if err != nil {
			logg.Error(ctx, "invalid reports location", err)
			os.Exit(1)
		}
	}

	schedulerService, err := scheduler.NewService(scheduler.ServiceParams{
		Logger:   logg,
		Lock:     dispatchLock,
		Metrics:  reportMetrics,
		Daily:    scheduler.NewDailyReportJob(reportsService),
		Monthly:  scheduler.NewMonthlyReportJob(reportsService),
		Snapshot: snapshot,
		Location: location,
	})
	if err != nil {
		logg.Error(ctx, "failed to create report scheduler", err)
		os.Exit(1)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := schedulerService.Start(runCtx); err != nil {
		logg.Error(ctx, "failed to start report scheduler", err)
		os.Exit(1)
	}

	var redisPinger controllers.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}
	handler := routes.NewRouter(routes.Deps{
		Config:    cfg,
		Logger:    logg,
		DB:        dbClient,
		Redis:     redisPinger,
		Auth:      authService,
		Inventory: inventoryService,
		Sales:     salesService,
		Dashboard: dashboardService,
		Settings:  settingsService,
		Reports:   reportsService,
		Metrics:   registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(startCtx, "signal", sig.String()), "shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 15*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "server shutdown failed", err)
		}
		cancel()
		if err := schedulerService.Stop(shutdownCtx); err != nil {
			logg.Error(startCtx, "scheduler shutdown failed", err)
		}
	}
}
