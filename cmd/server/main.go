package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kasperbn/poster_shop/internal/config"
	"github.com/kasperbn/poster_shop/internal/db"
	"github.com/kasperbn/poster_shop/internal/events"
	"github.com/kasperbn/poster_shop/internal/httpserver"
	"github.com/kasperbn/poster_shop/internal/logging"
	"github.com/kasperbn/poster_shop/internal/metrics"
	loggingmw "github.com/kasperbn/poster_shop/internal/middleware/logging"
	"github.com/kasperbn/poster_shop/internal/repo"
	"github.com/kasperbn/poster_shop/internal/search"
	"github.com/kasperbn/poster_shop/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()
	if producer.Enabled() {
		logger.Info("kafka producer enabled", "brokers", cfg.KafkaBrokers)
	}

	indexer := &search.Indexer{Index: cfg.ESIndex}
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg)
		if err != nil {
			logger.Error("elasticsearch connect failed", "error", err)
			os.Exit(1)
		}
		indexer.ES = es
		logger.Info("poster search enabled", "index", cfg.ESIndex)
	}

	r := repo.New(gormDB)
	deps := httpserver.Deps{
		Users:     &service.UserService{Repo: r, JWTSecret: cfg.JWTSecret},
		Catalog:   &service.CatalogService{Repo: r},
		Cart:      &service.CartService{Repo: r},
		Ratings:   &service.RatingService{Repo: r},
		Producer:  producer,
		Indexer:   indexer,
		JWTSecret: cfg.JWTSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(metrics.Middleware())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
