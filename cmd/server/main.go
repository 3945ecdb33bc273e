package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"LaunchpadPlatform/internal/handler"
	"LaunchpadPlatform/internal/middleware"
	"LaunchpadPlatform/internal/probe"
	"LaunchpadPlatform/pkg/config"
	"LaunchpadPlatform/pkg/errors"
	"LaunchpadPlatform/pkg/health"
	"LaunchpadPlatform/pkg/logger"
	"LaunchpadPlatform/pkg/metrics"
	pkg_redis "LaunchpadPlatform/pkg/redis"
)

func main() {
	// Инициализация конфигурации
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	appLogger, err := logger.NewLogger(
		cfg.Environment,
		cfg.Logger.Level,
		"web-service",
	)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() {
		if err := appLogger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()

	// Инициализация трассировки
	if err := metrics.InitializeOpenTelemetry("web-service"); err != nil {
		appLogger.Error("Failed to initialize tracing", logger.Error(err))
	}

	// Инициализация Redis
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer redisCancel()

	redisClient, err := pkg_redis.Connect(redisCtx, pkg_redis.FromAppConfig(cfg.Redis))
	if err != nil {
		appLogger.Error("Failed to connect to redis", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	// Инициализация метрик
	metricCollector := metrics.NewMetrics("web_service")

	// Инициализация статусной проверки
	prober := probe.NewProber(probe.NewRedisStore(redisClient, metricCollector), appLogger)

	// Создание HealthChecker
	healthChecker := NewRedisHealthChecker(redisClient)

	// Настройка HTTP сервера
	httpHandler := handler.NewHTTPHandler(appLogger, prober)
	rateLimiter := middleware.NewRateLimitMiddleware(redisClient, appLogger)

	rootHandler := setupHandler(httpHandler, healthChecker, metricCollector, rateLimiter, cfg)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: rootHandler,
	}

	// Запуск сервера в отдельной горутине
	go func() {
		appLogger.Info("Starting web service server", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", logger.Error(err))
		}
	}()

	// Обработка сигналов для graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server shutdown failed", logger.Error(err))
	}

	appLogger.Info("Server stopped")
}

// RedisHealthChecker проверяет здоровье сервиса по состоянию Redis
type RedisHealthChecker struct {
	redisClient *pkg_redis.Client
}

// NewRedisHealthChecker создает новый экземпляр RedisHealthChecker
func NewRedisHealthChecker(redisClient *pkg_redis.Client) *RedisHealthChecker {
	return &RedisHealthChecker{redisClient: redisClient}
}

// Check проверяет здоровье сервиса
func (h *RedisHealthChecker) Check() *health.HealthStatus {
	status := &health.HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]health.Status),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.redisClient.HealthCheck(ctx); err != nil {
		status.Status = "degraded"
		status.Services["redis"] = health.Status{
			Status:  "unhealthy",
			Details: err.Error(),
		}
	} else {
		status.Services["redis"] = health.Status{
			Status: "healthy",
		}
	}

	return status
}

func setupHandler(
	httpHandler *handler.HTTPHandler,
	healthChecker health.HealthChecker,
	metricCollector *metrics.Metrics,
	rateLimiter *middleware.RateLimitMiddleware,
	cfg *config.Config,
) http.Handler {
	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("/health", health.Handler(healthChecker))
	mux.HandleFunc("/ready", health.ReadyHandler(healthChecker))
	mux.HandleFunc("/live", health.LiveHandler())

	// Metrics endpoint
	mux.Handle("/metrics", metricCollector.GetHandler())

	// Application endpoints
	httpHandler.RegisterRoutes(mux)

	// Оборачиваем в middleware: rate limiting, метрики, обработка ошибок
	limited := rateLimiter.RateLimit(cfg.RateLimiting.RequestsPerMinute, time.Minute)(mux)
	return errors.Middleware(metricCollector.Middleware(limited))
}
