package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sricodings/balashop/internal/settings"
	"github.com/sricodings/balashop/pkg/config"
	"github.com/sricodings/balashop/pkg/db"
	"github.com/sricodings/balashop/pkg/db/models"
	"github.com/sricodings/balashop/pkg/logger"
	"github.com/sricodings/balashop/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|validate|seed")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	adminUser := flag.String("admin-user", "admin", "dashboard username (for seed)")
	adminPass := flag.String("admin-pass", "admin123", "dashboard password (for seed)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
		"dir": *dir,
	})

	// validate needs no DB connection
	if *cmd == "validate" {
		if err := migrate.ValidateDir(*dir); err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	if cfg.FeatureFlags.UseSQLite && *cmd != "seed" {
		fmt.Fprintln(os.Stderr, "goose migrations target Postgres; sqlite mode uses AutoMigrate instead")
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)

	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "up", "down", "status":
		if err := migrate.Run(ctx, sqlDB, *dir, *cmd); err != nil {
			fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
			os.Exit(1)
		}

	case "seed":
		if err := seed(ctx, dbClient, *adminUser, *adminPass); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("seed completed")

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

// seed fills the settings defaults and ensures the dashboard login exists.
// Existing rows are never overwritten.
func seed(ctx context.Context, dbClient *db.Client, adminUser, adminPass string) error {
	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return err
	}
	if err := settingsService.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	var count int64
	if err := dbClient.DB().WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", adminUser).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}
	user := &models.User{Username: adminUser, Password: adminPass, Role: "admin"}
	if err := dbClient.DB().WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to initialize "+resource, err)
	os.Exit(1)
}
