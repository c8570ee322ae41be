package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"attendancepro-server-go/config"
	"attendancepro-server-go/db"
	"attendancepro-server-go/handlers"
	"attendancepro-server-go/reports"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// Pick the store: Redis when configured, otherwise an in-process map
	var (
		store       db.Store
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		initCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = db.InitializeRedisClient(initCtx, db.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		logger.Info("Connected to Redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		store = db.NewRedisStore(redisClient, cfg.StoragePrefix, logger)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory store; data is lost on restart")
		store = db.NewMemoryStore()
	}

	pages := handlers.NewPages(store, logger)

	// Seed-if-absent for every page dataset
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = pages.Seed(seedCtx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to seed page data: %v", err)
	}

	reportService := reports.NewService(reports.NewGenerator(cfg.ReportSeed), cfg.ReportRows, cfg.ReportPageSize, logger)

	apiHandler := handlers.NewAPIHandler(pages, reportService, store, cfg.AgendaTeacher, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	apiHandler.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close Redis client", "error", err)
		}
	}

	logger.Info("Server exited")
}
