package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amorpet/amorpet-backend/config"
	"github.com/amorpet/amorpet-backend/internal/app/controller"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/app/service"
	"github.com/amorpet/amorpet-backend/internal/codegen"
	"github.com/amorpet/amorpet-backend/internal/db"
	"github.com/amorpet/amorpet-backend/internal/middleware"
	"github.com/amorpet/amorpet-backend/internal/router"
	"github.com/amorpet/amorpet-backend/internal/scheduler"
	"github.com/amorpet/amorpet-backend/internal/storage"
	ws "github.com/amorpet/amorpet-backend/internal/websocket"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"github.com/amorpet/amorpet-backend/pkg/mailer"
	"github.com/amorpet/amorpet-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting AmorPet Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it, logout revocation is skipped.
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without token revocation", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer redis.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	colorRepo := repository.NewColorRepository(db.GetDB())
	sizeRepo := repository.NewProductSizeRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	priceRepo := repository.NewProductPriceRepository(db.GetDB())
	imageRepo := repository.NewProductImageRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	contactRepo := repository.NewContactRepository(db.GetDB())

	// Infrastructure
	generator := codegen.New(db.GetDB())
	imageStore := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)
	contactMailer := mailer.New(cfg.SMTP)

	hub := ws.NewHub()
	go hub.Run()

	// Services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	catalogService := service.NewCatalogService(productRepo, cfg.Catalog.WhatsAppNumber, cfg.Catalog.PlaceholderURL)
	productService := service.NewProductService(productRepo, categoryRepo, imageRepo, generator, imageStore, db.GetDB())
	variantService := service.NewVariantService(variantRepo, productRepo, sizeRepo, colorRepo, generator)
	categoryService := service.NewCategoryService(categoryRepo)
	colorService := service.NewColorService(colorRepo)
	sizeService := service.NewSizeService(sizeRepo, priceRepo, productRepo)
	contactService := service.NewContactService(contactRepo, contactMailer, hub, cfg.Catalog.CaptchaSecret)
	exportService := service.NewExportService(productRepo, variantRepo)

	// Controllers
	catalogController := controller.NewCatalogController(catalogService)
	productController := controller.NewProductController(productService, exportService)
	variantController := controller.NewVariantController(variantService)
	categoryController := controller.NewCategoryController(categoryService)
	colorController := controller.NewColorController(colorService)
	sizeController := controller.NewSizeController(sizeService)
	contactController := controller.NewContactController(contactService)
	authController := controller.NewAuthController(authService)
	notificationController := controller.NewNotificationController(hub, cfg.CORS.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	availabilityScheduler := scheduler.NewAvailabilityScheduler(variantRepo)
	if err := availabilityScheduler.Start(); err != nil {
		logger.Fatal("Failed to start availability scheduler", err)
	}
	defer availabilityScheduler.Stop()

	r := router.NewRouter(
		catalogController,
		productController,
		variantController,
		categoryController,
		colorController,
		sizeController,
		contactController,
		authController,
		notificationController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
