package repository

import (
	"context"

	"github.com/radiomap-service/internal/domain"
)

// DirectoryRepository определяет методы для работы с каталогом
// радиостанций (Radio Browser API)
type DirectoryRepository interface {
	// Search возвращает станции по фильтру с пагинацией
	Search(ctx context.Context, filter domain.StationFilter) ([]domain.Station, error)

	// ListWithoutGeo возвращает страницу станций без координат
	ListWithoutGeo(ctx context.Context, offset, limit int) ([]domain.Station, error)

	// RegisterClick регистрирует прослушивание станции
	RegisterClick(ctx context.Context, stationUUID string) error
}
