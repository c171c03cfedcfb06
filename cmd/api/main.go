package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"chronova/internal/adapter/api"
	"chronova/internal/adapter/api/handler"
	apimiddleware "chronova/internal/adapter/api/middleware"
	"chronova/internal/adapter/api/router"
	"chronova/internal/adapter/repository"
	domainrepo "chronova/internal/domain/repository"
	"chronova/internal/infrastructure/catalog"
	"chronova/internal/infrastructure/firebase"
	"chronova/internal/infrastructure/ratelimit"
	"chronova/internal/infrastructure/websocket"
	"chronova/internal/usecase"
	"chronova/pkg/config"
	"chronova/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogReader, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open catalog source %s: %v", cfg.CatalogSource, err)
		os.Exit(1)
	}
	defer closeCatalog()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter(ratelimit.PerMinute(int(cfg.RateLimitPerMinute)))
	limiter.SetPolicy(handler.ActionLiveConnect, ratelimit.PerMinute(10))
	limiter.SetPolicy(handler.ActionLiveMessage, ratelimit.PerMinute(int(cfg.RateLimitPerMinute)*2))
	limiter.StartCleanupRoutine(ctx, 5*time.Minute)

	collectionUseCase := usecase.NewCollectionUseCase(catalogReader)

	handler.Setup(collectionUseCase, wsManager, limiter)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, apimiddleware.NewRateLimitMiddleware(limiter))

	go func() {
		logger.Info("Starting server on port %s (catalog source: %s)", cfg.ServerPort, cfg.CatalogSource)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}

// openCatalog picks the Catalog Service client configured by CATALOG_SOURCE.
func openCatalog(ctx context.Context, cfg *config.Config) (domainrepo.CatalogReader, func(), error) {
	if cfg.CatalogSource != config.CatalogSourceFirestore {
		logger.Info("Reading catalog from %s", cfg.CatalogBaseURL)
		return catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout), func() {}, nil
	}

	client, err := firebase.NewFirestoreClient(ctx, cfg.FirebaseProject, firebase.Credentials{
		JSON: cfg.ServiceAccountJSON,
		Path: cfg.ServiceAccountPath,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Reading catalog from Firestore project %s", cfg.FirebaseProject)
	return repository.NewFirestoreCatalog(client), func() { client.Close() }, nil
}
