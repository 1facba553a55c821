package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/cache"
	"github.com/gearshare/service-rental/internal/config"
	"github.com/gearshare/service-rental/internal/database"
	"github.com/gearshare/service-rental/internal/handler"
	"github.com/gearshare/service-rental/internal/health"
	"github.com/gearshare/service-rental/internal/kafka"
	"github.com/gearshare/service-rental/internal/logger"
	"github.com/gearshare/service-rental/internal/middleware"
	"github.com/gearshare/service-rental/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rental",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.ItemModel{},
			&repository.CommentModel{},
			&repository.BookingModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := cfg.DBConfig.DatabaseURL()
		if err := database.RunMigrations(dbURL, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize Redis search cache
	searchCache := cache.NewRedisCache(cfg.RedisConfig)
	defer func() { _ = searchCache.Close() }()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	// Initialize application services
	userService := application.NewUserService(userRepo, log)
	itemService := application.NewItemService(itemRepo, commentRepo, userRepo, bookingRepo, searchCache, log)
	bookingService := application.NewBookingService(bookingRepo, userRepo, itemRepo, kafkaProducer, log)

	// Initialize HTTP handlers
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	adminHandler := handler.NewAdminHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-rental")
	healthHandler.RegisterRoutes(router)

	// Register routes
	userHandler.RegisterRoutes(&router.RouterGroup)
	itemHandler.RegisterRoutes(&router.RouterGroup)
	bookingHandler.RegisterRoutes(&router.RouterGroup)
	adminHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rental...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rental stopped")
}
