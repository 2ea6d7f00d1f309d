package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yhkang/stylehub-backend/config"
	"github.com/yhkang/stylehub-backend/internal/app/controller"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	"github.com/yhkang/stylehub-backend/internal/app/service"
	"github.com/yhkang/stylehub-backend/internal/db"
	"github.com/yhkang/stylehub-backend/internal/middleware"
	"github.com/yhkang/stylehub-backend/internal/router"
	"github.com/yhkang/stylehub-backend/internal/scheduler"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"github.com/yhkang/stylehub-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting StyleHub Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; catalog events are skipped when disabled
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Failed to connect to Redis, catalog events disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Initialize repositories
	attributeRepo := repository.NewAttributeRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	stockRepo := repository.NewStockRepository(db.GetDB())
	warehouseRepo := repository.NewWarehouseRepository(db.GetDB())
	channelRepo := repository.NewChannelRepository(db.GetDB())
	listingRepo := repository.NewListingRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	notifier := service.NewRedisProductNotifier()
	variantService := service.NewVariantService(db.GetDB(), productRepo, variantRepo, attributeRepo, warehouseRepo, orderRepo, notifier)
	bulkService := service.NewVariantBulkService(db.GetDB(), productRepo, variantRepo, attributeRepo, warehouseRepo, channelRepo, notifier)
	stockService := service.NewStockService(variantRepo, stockRepo, warehouseRepo, notifier)
	listingService := service.NewListingService(variantRepo, productRepo, channelRepo, listingRepo, notifier)
	productService := service.NewProductService(productRepo, attributeRepo, channelRepo, warehouseRepo)
	exportService := service.NewExportService(variantRepo)

	// Initialize controllers
	catalogController := controller.NewCatalogController(productService)
	variantController := controller.NewVariantController(variantService, bulkService, stockService, listingService)
	exportController := controller.NewExportController(exportService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the nightly attribute value cleanup
	cleanupScheduler := scheduler.NewValueCleanupScheduler(attributeRepo)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Warn("Failed to start value cleanup scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer cleanupScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		catalogController,
		variantController,
		exportController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
