package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nexuite/sync-backend/internal/config"
	"github.com/nexuite/sync-backend/internal/database"
	"github.com/nexuite/sync-backend/internal/handlers"
	"github.com/nexuite/sync-backend/internal/middleware"
	"github.com/nexuite/sync-backend/internal/services"
	"github.com/nexuite/sync-backend/internal/storage"
	"github.com/nexuite/sync-backend/pkg/logger"
)

func main() {
	logger.Init()

	cfg := config.Load()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	var exporter *services.Exporter
	if cfg.Export.Enabled {
		storageClient, err := storage.NewMinIOClient(cfg.MinIO)
		if err != nil {
			log.Fatalf("minio initialization failed: %v", err)
		}
		if err := storageClient.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("failed ensuring minio bucket: %v", err)
		}
		exporter = services.NewExporter(db, storageClient)
		exporter.Start(cfg.Export.Interval)
	}

	healthHandler := handlers.NewHealthHandler(db)
	syncHandler := handlers.NewSyncHandler(db)
	exportHandler := handlers.NewExportHandler(exporter)

	app := fiber.New(fiber.Config{BodyLimit: 16 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", healthHandler.Check)

	syncRoutes := app.Group("/sync", middleware.RequireAPIKey(cfg.Sync.APIKey))
	syncRoutes.Post("/push", syncHandler.Push)
	syncRoutes.Get("/export", exportHandler.Trigger)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":           cfg.Server.Port,
		"address":        listenAddr,
		"export_enabled": cfg.Export.Enabled,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
