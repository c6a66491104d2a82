package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"go.uber.org/zap"
)

// processedBlob - durable-снимок множества уже обработанных станций.
// Снимок старше своего TTL целиком игнорируется при загрузке.
type processedBlob struct {
	UUIDs     []string  `json:"processed_uuids"`
	Timestamp time.Time `json:"timestamp"`
}

// PipelineUsecase - батч-пайплайн геокодирования: станции без
// координат прогоняются через извлечение кандидатов, геокодер и
// назначение позиции, результат вливается в хранилище. Прогон
// последовательный, чанками, с паузами вежливости к внешним API;
// отмена посреди прогона не поддерживается.
type PipelineUsecase struct {
	directory repository.DirectoryRepository
	store     repository.StationStoreRepository
	storage   repository.CacheRepository

	extractor *LocationExtractor
	geocoder  *GeocodeUsecase
	assigner  *PositionAssigner
	cache     *GeocodeCache

	batchSize    int
	stationDelay time.Duration
	processedTTL time.Duration
	pageSize     int

	sleep  func(time.Duration)
	logger *zap.Logger
}

type PipelineConfig struct {
	BatchSize    int
	StationDelay time.Duration
	ProcessedTTL time.Duration
	PageSize     int
}

func NewPipelineUsecase(
	directory repository.DirectoryRepository,
	store repository.StationStoreRepository,
	storage repository.CacheRepository,
	extractor *LocationExtractor,
	geocoder *GeocodeUsecase,
	assigner *PositionAssigner,
	cache *GeocodeCache,
	cfg PipelineConfig,
	logger *zap.Logger,
) *PipelineUsecase {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10000
	}
	return &PipelineUsecase{
		directory:    directory,
		store:        store,
		storage:      storage,
		extractor:    extractor,
		geocoder:     geocoder,
		assigner:     assigner,
		cache:        cache,
		batchSize:    cfg.BatchSize,
		stationDelay: cfg.StationDelay,
		processedTTL: cfg.ProcessedTTL,
		pageSize:     cfg.PageSize,
		sleep:        time.Sleep,
		logger:       logger,
	}
}

// Run выполняет один прогон пайплайна. limit > 0 ограничивает число
// обрабатываемых станций (для ручных и тестовых запусков).
func (u *PipelineUsecase) Run(ctx context.Context, limit int) (*domain.GeocodeRunReport, error) {
	stations, err := u.fetchStationsWithoutGeo(ctx, limit)
	if err != nil {
		return nil, err
	}

	processed := u.loadProcessed(ctx)
	report := &domain.GeocodeRunReport{}
	taken := make([]domain.Coordinate, 0, len(stations))

	u.logger.Info("Geocoding run started",
		zap.Int("stations", len(stations)),
		zap.Int("already_processed", len(processed)))

	for start := 0; start < len(stations); start += u.batchSize {
		end := start + u.batchSize
		if end > len(stations) {
			end = len(stations)
		}

		var geocoded []domain.Station
		for _, station := range stations[start:end] {
			if _, done := processed[station.UUID]; done {
				report.Skipped++
				continue
			}

			report.Processed++
			if positioned, ok := u.geocodeStation(ctx, station, &taken); ok {
				geocoded = append(geocoded, positioned)
				report.Geocoded++
			} else {
				report.Failed++
			}
			processed[station.UUID] = struct{}{}

			if u.stationDelay > 0 {
				u.sleep(u.stationDelay)
			}
		}

		if len(geocoded) > 0 {
			if err := u.store.UpsertBatch(ctx, geocoded); err != nil {
				u.logger.Error("Failed to store geocoded chunk", zap.Error(err))
			}
		}
		u.saveProcessed(ctx, processed)
	}

	// Финальный безусловный сброс кеша геокодирования
	if err := u.cache.Flush(ctx); err != nil {
		u.logger.Warn("Final cache flush failed", zap.Error(err))
	}
	u.saveProcessed(ctx, processed)

	report.APICalls = u.geocoder.Calls()
	u.logger.Info("Geocoding run finished",
		zap.Int("processed", report.Processed),
		zap.Int("geocoded", report.Geocoded),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Int("api_calls", report.APICalls))

	return report, nil
}

// geocodeStation пробует кандидатов по порядку: первый успешно
// геокодированный побеждает. Неудача всех кандидатов оставляет
// станцию без позиции.
func (u *PipelineUsecase) geocodeStation(ctx context.Context, station domain.Station, taken *[]domain.Coordinate) (domain.Station, bool) {
	extraction := u.extractor.Extract(station)
	if len(extraction.Candidates) == 0 {
		u.logger.Debug("No location candidates", zap.String("station", station.Name))
		return station, false
	}

	for _, candidate := range extraction.Candidates {
		result, ok := u.geocoder.Geocode(ctx, candidate.Location, station.Country, candidate.Type)
		if !ok {
			continue
		}

		lat, lon := u.assigner.Assign(result, *taken)
		*taken = append(*taken, domain.Coordinate{Lat: lat, Lon: lon})

		u.logger.Debug("Station geocoded",
			zap.String("station", station.Name),
			zap.String("candidate", candidate.Location),
			zap.String("place_name", result.PlaceName))

		return station.WithPosition(lat, lon, result.PlaceName, result.Granularity), true
	}

	return station, false
}

// fetchStationsWithoutGeo постранично выкачивает станции без
// координат из каталога
func (u *PipelineUsecase) fetchStationsWithoutGeo(ctx context.Context, limit int) ([]domain.Station, error) {
	var all []domain.Station
	offset := 0

	for {
		page, err := u.directory.ListWithoutGeo(ctx, offset, u.pageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, station := range page {
			if !station.NeedsGeocoding() {
				continue
			}
			all = append(all, station)
			if limit > 0 && len(all) >= limit {
				return all, nil
			}
		}

		if len(page) < u.pageSize {
			break
		}
		offset += u.pageSize
	}

	return all, nil
}

func (u *PipelineUsecase) loadProcessed(ctx context.Context) map[string]struct{} {
	processed := make(map[string]struct{})

	data, err := u.storage.Get(ctx, repository.ProcessedCacheKey)
	if err != nil {
		u.logger.Warn("Failed to load processed set", zap.Error(err))
		return processed
	}
	if data == nil {
		return processed
	}

	var blob processedBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		u.logger.Warn("Malformed processed set, starting empty", zap.Error(err))
		return processed
	}
	if u.processedTTL > 0 && time.Since(blob.Timestamp) > u.processedTTL {
		u.logger.Info("Processed set expired, starting empty")
		return processed
	}

	for _, id := range blob.UUIDs {
		processed[id] = struct{}{}
	}
	return processed
}

func (u *PipelineUsecase) saveProcessed(ctx context.Context, processed map[string]struct{}) {
	blob := processedBlob{
		UUIDs:     make([]string, 0, len(processed)),
		Timestamp: time.Now(),
	}
	for id := range processed {
		blob.UUIDs = append(blob.UUIDs, id)
	}

	data, err := json.Marshal(blob)
	if err != nil {
		u.logger.Error("Failed to marshal processed set", zap.Error(err))
		return
	}
	if err := u.storage.Set(ctx, repository.ProcessedCacheKey, data, u.processedTTL); err != nil {
		u.logger.Warn("Failed to save processed set", zap.Error(err))
	}
}
