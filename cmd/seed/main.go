package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/kasperbn/poster_shop/internal/config"
	"github.com/kasperbn/poster_shop/internal/db"
	"github.com/kasperbn/poster_shop/internal/logging"
	"github.com/kasperbn/poster_shop/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	ctx := logging.IntoContext(context.Background(), logger)

	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	dir := cfg.SeedDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	logger.Info("seeding database", "dir", dir)
	if err := seed.ImportDir(ctx, gormDB, dir); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed completed")
}
