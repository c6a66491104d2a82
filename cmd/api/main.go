package main

// @title Radio Map Service API
// @version 1.0.0
// @description Сервис карты радиостанций поверх каталога Radio Browser. Геокодирует станции без координат по названию и стране, раскладывает совпадающие точки и отдаёт их для отображения на карте.
// @description
// @description Основные возможности:
// @description - Поиск станций в каталоге по стране, тегу, языку и имени
// @description - Станции внутри видимой области карты
// @description - Избранное с экспортом и импортом в JSON
// @description - Асинхронный запуск батч-геокодирования
// @description - Статистика позиционирования

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/radiomap-service/docs/swagger"
	"github.com/radiomap-service/internal/config"
	httpDelivery "github.com/radiomap-service/internal/delivery/http"
	"github.com/radiomap-service/internal/delivery/http/handler"
	"github.com/radiomap-service/internal/infrastructure/radiobrowser"
	"github.com/radiomap-service/internal/pkg/logger"
	"github.com/radiomap-service/internal/repository/cache"
	"github.com/radiomap-service/internal/repository/postgres"
	redisRepo "github.com/radiomap-service/internal/repository/redis"
	"github.com/radiomap-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Radio Map Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	stationRepo := postgres.NewStationRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	directoryRepo := radiobrowser.NewRadioBrowserClient(&cfg.RadioBrowser, log)
	log.Info("Repositories initialized")

	// 7. Initialize use cases
	stationUC := usecase.NewStationUsecase(directoryRepo, stationRepo, log)
	favoritesUC := usecase.NewFavoritesUsecase(cacheRepo, log)
	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	stationHandler := handler.NewStationHandler(stationUC, log)
	favoritesHandler := handler.NewFavoritesHandler(favoritesUC, log)
	geocodingHandler := handler.NewGeocodingHandler(streamRepo, log)
	statsHandler := handler.NewStatsHandler(stationUC, log)
	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		stationHandler,
		favoritesHandler,
		geocodingHandler,
		statsHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
