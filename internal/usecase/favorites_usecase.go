package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"github.com/radiomap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// FavoritesUsecase - коллекция избранных станций, персистентная в
// durable-хранилище одним JSON blob-ом без срока жизни
type FavoritesUsecase struct {
	mu      sync.Mutex
	storage repository.CacheRepository
	logger  *zap.Logger
}

func NewFavoritesUsecase(storage repository.CacheRepository, logger *zap.Logger) *FavoritesUsecase {
	return &FavoritesUsecase{
		storage: storage,
		logger:  logger,
	}
}

// List возвращает избранные станции. Испорченный blob трактуется как
// пустая коллекция.
func (u *FavoritesUsecase) List(ctx context.Context) ([]domain.Station, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.load(ctx)
}

// Add добавляет станцию; дубликаты по UUID молча пропускаются
func (u *FavoritesUsecase) Add(ctx context.Context, station domain.Station) error {
	if station.UUID == "" {
		return errors.ErrInvalidStationUUID
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	stations, err := u.load(ctx)
	if err != nil {
		return err
	}

	for _, s := range stations {
		if s.UUID == station.UUID {
			return nil
		}
	}

	return u.save(ctx, append(stations, station))
}

// Remove удаляет станцию из избранного
func (u *FavoritesUsecase) Remove(ctx context.Context, stationUUID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	stations, err := u.load(ctx)
	if err != nil {
		return err
	}

	filtered := make([]domain.Station, 0, len(stations))
	for _, s := range stations {
		if s.UUID != stationUUID {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == len(stations) {
		return errors.ErrStationNotFound
	}

	return u.save(ctx, filtered)
}

// Export упаковывает коллекцию в файл фиксированной схемы
func (u *FavoritesUsecase) Export(ctx context.Context) (*domain.FavoritesExport, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	stations, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.FavoritesExport{
		Stations:   stations,
		ExportDate: time.Now(),
		Version:    domain.FavoritesExportVersion,
	}, nil
}

// Import вливает файл экспорта в коллекцию; дубликаты по UUID и
// записи без UUID молча пропускаются. Возвращает число добавленных.
func (u *FavoritesUsecase) Import(ctx context.Context, data []byte) (int, error) {
	var export domain.FavoritesExport
	if err := json.Unmarshal(data, &export); err != nil {
		u.logger.Warn("Malformed favorites import", zap.Error(err))
		return 0, errors.ErrInvalidImportFile
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	stations, err := u.load(ctx)
	if err != nil {
		return 0, err
	}

	known := make(map[string]struct{}, len(stations))
	for _, s := range stations {
		known[s.UUID] = struct{}{}
	}

	added := 0
	for _, s := range export.Stations {
		if s.UUID == "" {
			continue
		}
		if _, dup := known[s.UUID]; dup {
			continue
		}
		known[s.UUID] = struct{}{}
		stations = append(stations, s)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	if err := u.save(ctx, stations); err != nil {
		return 0, err
	}

	u.logger.Info("Favorites imported", zap.Int("added", added))
	return added, nil
}

func (u *FavoritesUsecase) load(ctx context.Context) ([]domain.Station, error) {
	data, err := u.storage.Get(ctx, repository.FavoritesKey)
	if err != nil {
		return nil, errors.ErrCacheError
	}
	if data == nil {
		return nil, nil
	}

	var stations []domain.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		u.logger.Warn("Malformed favorites blob, treating as empty", zap.Error(err))
		return nil, nil
	}
	return stations, nil
}

func (u *FavoritesUsecase) save(ctx context.Context, stations []domain.Station) error {
	data, err := json.Marshal(stations)
	if err != nil {
		return errors.ErrInternalServer
	}
	// Избранное хранится бессрочно
	if err := u.storage.Set(ctx, repository.FavoritesKey, data, 0); err != nil {
		return errors.ErrCacheError
	}
	return nil
}
