package usecase

import (
	"context"
	"time"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"github.com/radiomap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// StationUsecase - операции над станциями для API: поиск по каталогу,
// выборка для карты, регистрация прослушивания
type StationUsecase struct {
	directory repository.DirectoryRepository
	store     repository.StationStoreRepository
	logger    *zap.Logger
}

func NewStationUsecase(directory repository.DirectoryRepository, store repository.StationStoreRepository, logger *zap.Logger) *StationUsecase {
	return &StationUsecase{
		directory: directory,
		store:     store,
		logger:    logger,
	}
}

// Search проксирует поиск в каталог станций
func (u *StationUsecase) Search(ctx context.Context, filter domain.StationFilter) ([]domain.Station, error) {
	stations, err := u.directory.Search(ctx, filter)
	if err != nil {
		u.logger.Error("Directory search failed", zap.Error(err))
		return nil, errors.ErrDirectoryUnavailable
	}
	return stations, nil
}

// MapStations возвращает позиционированные станции внутри видимой
// области карты
func (u *StationUsecase) MapStations(ctx context.Context, bounds domain.BoundingBox, limit int) ([]domain.Station, error) {
	if bounds.South > bounds.North ||
		!(bounds.South >= -90 && bounds.North <= 90 && bounds.West >= -180 && bounds.East <= 180) {
		return nil, errors.ErrInvalidCoordinates
	}
	return u.store.ListByBounds(ctx, bounds, limit)
}

// GetByUUID возвращает станцию из хранилища
func (u *StationUsecase) GetByUUID(ctx context.Context, uuid string) (*domain.Station, error) {
	if uuid == "" {
		return nil, errors.ErrInvalidStationUUID
	}
	return u.store.GetByUUID(ctx, uuid)
}

// RegisterPlay регистрирует прослушивание станции в каталоге.
// Вызов отправляется как отцепленная задача: неудача наблюдается
// только в логах и никогда не влияет на ответ вызывающему.
func (u *StationUsecase) RegisterPlay(stationUUID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := u.directory.RegisterClick(ctx, stationUUID); err != nil {
			u.logger.Warn("Play registration failed",
				zap.String("station_uuid", stationUUID),
				zap.Error(err))
		}
	}()
}

// Statistics возвращает агрегированную статистику хранилища
func (u *StationUsecase) Statistics(ctx context.Context) (*domain.StoreStatistics, error) {
	return u.store.GetStatistics(ctx)
}
