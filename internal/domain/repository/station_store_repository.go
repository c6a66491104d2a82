package repository

import (
	"context"

	"github.com/radiomap-service/internal/domain"
)

// StationStoreRepository определяет методы хранилища геокодированных
// станций (данные для карты)
type StationStoreRepository interface {
	// UpsertBatch сохраняет станции; существующие записи заменяются
	// по UUID (last-write merge)
	UpsertBatch(ctx context.Context, stations []domain.Station) error

	// GetByUUID возвращает станцию по идентификатору
	GetByUUID(ctx context.Context, uuid string) (*domain.Station, error)

	// ListByBounds возвращает станции внутри прямоугольника карты
	ListByBounds(ctx context.Context, bounds domain.BoundingBox, limit int) ([]domain.Station, error)

	// GetStatistics возвращает агрегированную статистику хранилища
	GetStatistics(ctx context.Context) (*domain.StoreStatistics, error)
}
