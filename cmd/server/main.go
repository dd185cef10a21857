package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/borrowhub/service-rental/internal/application"
	"github.com/borrowhub/service-rental/internal/config"
	"github.com/borrowhub/service-rental/internal/database"
	"github.com/borrowhub/service-rental/internal/events"
	"github.com/borrowhub/service-rental/internal/handler"
	"github.com/borrowhub/service-rental/internal/logger"
	"github.com/borrowhub/service-rental/internal/metrics"
	"github.com/borrowhub/service-rental/internal/middleware"
	"github.com/borrowhub/service-rental/internal/repository"
)

func main() {
	// Optional .env for local development; environment wins in deployment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "service-rental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rental",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.RequestModel{},
			&repository.ItemModel{},
			&repository.BookingModel{},
			&repository.CommentModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var producer events.Producer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		producer = events.NewKafkaProducer(cfg.KafkaConfig.Brokers, log)
	} else {
		log.Warn("no kafka brokers configured, booking events will be discarded")
		producer = events.NoopProducer{}
	}
	defer func() { _ = producer.Close() }()

	// Repositories
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)

	// Application services
	resolver := application.NewResolver(userRepo, itemRepo, bookingRepo, requestRepo)
	bookingService := application.NewBookingService(resolver, bookingRepo, producer, log)
	itemService := application.NewItemService(resolver, itemRepo, commentRepo, bookingRepo, log)
	userService := application.NewUserService(userRepo, log)
	requestService := application.NewRequestService(resolver, requestRepo, itemRepo, log)

	// HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	itemHandler := handler.NewItemHandler(itemService)
	userHandler := handler.NewUserHandler(userService)
	requestHandler := handler.NewRequestHandler(requestService)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	metrics.Register()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(metrics.Middleware())
	router.Use(cors.Default())

	healthHandler := handler.NewHealthHandler(db, "service-rental")
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", metrics.Handler())

	bookingHandler.RegisterRoutes(&router.RouterGroup)
	itemHandler.RegisterRoutes(&router.RouterGroup)
	userHandler.RegisterRoutes(&router.RouterGroup)
	requestHandler.RegisterRoutes(&router.RouterGroup)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rental...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rental stopped")
}
