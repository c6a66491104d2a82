package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/radiomap-service/internal/config"
	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/infrastructure/mapbox"
	"github.com/radiomap-service/internal/infrastructure/radiobrowser"
	"github.com/radiomap-service/internal/pkg/logger"
	"github.com/radiomap-service/internal/repository/cache"
	"github.com/radiomap-service/internal/repository/postgres"
	redisRepo "github.com/radiomap-service/internal/repository/redis"
	"github.com/radiomap-service/internal/usecase"
	"github.com/radiomap-service/internal/worker"
	"github.com/radiomap-service/internal/worker/geocoding"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Geocoding Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Geocoding.BatchSize),
		zap.Int("max_calls_per_minute", cfg.Geocoding.MaxCallsPerMinute))

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

	// 5. Initialize repositories
	stationRepo := postgres.NewStationRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	directoryRepo := radiobrowser.NewRadioBrowserClient(&cfg.RadioBrowser, log)
	geocoderRepo := mapbox.NewMapboxClient(&cfg.Mapbox, log)

	// 6. Initialize use cases
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	geocodeCache := usecase.NewGeocodeCache(startupCtx, cacheRepo, cfg.Cache.GeocodeCacheTTL, log)
	startupCancel()

	geocodeUC := usecase.NewGeocodeUsecase(geocoderRepo, geocodeCache, cfg.Geocoding.MaxCallsPerMinute, log)
	spreadUC := usecase.NewSpreadUsecase(nil, log)
	pipelineUC := usecase.NewPipelineUsecase(
		directoryRepo,
		stationRepo,
		cacheRepo,
		usecase.NewLocationExtractor(),
		geocodeUC,
		usecase.NewPositionAssigner(nil),
		geocodeCache,
		usecase.PipelineConfig{
			BatchSize:    cfg.Geocoding.BatchSize,
			StationDelay: cfg.Geocoding.StationDelay,
			ProcessedTTL: cfg.Cache.ProcessedCacheTTL,
			PageSize:     cfg.RadioBrowser.PageSize,
		},
		log,
	)

	// 7. Load seed data if configured
	if cfg.Geocoding.SeedFile != "" {
		seedUC := usecase.NewSeedUsecase(stationRepo, spreadUC, log)
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 5*time.Minute)
		count, err := seedUC.Load(seedCtx, cfg.Geocoding.SeedFile)
		seedCancel()
		if err != nil {
			log.Error("Failed to load seed data",
				zap.String("source", cfg.Geocoding.SeedFile),
				zap.Error(err))
		} else {
			log.Info("Seed data loaded", zap.Int("stations", count))
		}
	}

	// 8. Initialize workers
	geocodingWorker := geocoding.NewGeocodingWorker(
		streamRepo,
		pipelineUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	workerManager := worker.NewManager(log)
	workerManager.Register(geocodingWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Optionally enqueue a full run right away
	if cfg.Worker.RunOnStartup {
		event := domain.GeocodeJobEvent{
			JobID:       uuid.New(),
			RequestedAt: time.Now().UTC(),
		}
		if err := streamRepo.PublishToStream(ctx, domain.StreamGeocodeJobs, event); err != nil {
			log.Error("Failed to enqueue startup geocoding job", zap.Error(err))
		} else {
			log.Info("Startup geocoding job enqueued", zap.String("job_id", event.JobID.String()))
		}
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker stopped")
}
