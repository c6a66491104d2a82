package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"go.uber.org/zap"
)

// seedUpsertChunk - размер пачки при заливке сида в хранилище
const seedUpsertChunk = 500

// SeedUsecase загружает файл массового офлайн-геокодирования
// (локальный или по URL), прогоняет его через разводку маркеров и
// вливает в хранилище станций
type SeedUsecase struct {
	store      repository.StationStoreRepository
	spread     *SpreadUsecase
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSeedUsecase(store repository.StationStoreRepository, spread *SpreadUsecase, logger *zap.Logger) *SeedUsecase {
	return &SeedUsecase{
		store:      store,
		spread:     spread,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// Load читает сид по пути или URL. Отсутствующий или испорченный сид
// не фатален: возвращается ошибка, состояние хранилища не меняется.
func (u *SeedUsecase) Load(ctx context.Context, source string) (int, error) {
	if source == "" {
		return 0, nil
	}

	var data []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = u.fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return 0, fmt.Errorf("read seed %s: %w", source, err)
	}

	var records []domain.GeocodedStation
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parse seed %s: %w", source, err)
	}

	return u.apply(ctx, records)
}

func (u *SeedUsecase) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed fetch: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// apply дедуплицирует записи, разводит координаты и вливает станции
// в хранилище пачками
func (u *SeedUsecase) apply(ctx context.Context, records []domain.GeocodedStation) (int, error) {
	records = domain.DeduplicateGeocoded(records)
	if len(records) == 0 {
		return 0, nil
	}

	coords := u.spread.Spread(records)

	stations := make([]domain.Station, 0, len(records))
	for i := range records {
		rec := &records[i]
		coord := coords[rec.UUID]

		station := domain.Station{
			UUID:    rec.UUID,
			Name:    rec.Name,
			Country: rec.Country,
			State:   rec.State,
		}
		stations = append(stations, station.WithPosition(
			coord.Lat, coord.Lon, rec.PlaceName, rec.Granularity()))
	}

	for start := 0; start < len(stations); start += seedUpsertChunk {
		end := start + seedUpsertChunk
		if end > len(stations) {
			end = len(stations)
		}
		if err := u.store.UpsertBatch(ctx, stations[start:end]); err != nil {
			return 0, fmt.Errorf("seed upsert: %w", err)
		}
	}

	u.logger.Info("Seed loaded", zap.Int("stations", len(stations)))
	return len(stations), nil
}
