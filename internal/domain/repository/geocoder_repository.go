package repository

import (
	"context"

	"github.com/radiomap-service/internal/domain"
)

// GeocoderRepository определяет методы для работы с внешним геокодером
type GeocoderRepository interface {
	// Forward выполняет прямое геокодирование текстового запроса.
	// types - фильтр place-типов через запятую, limit - максимум
	// кандидатов в ответе.
	Forward(ctx context.Context, query, types string, limit int) ([]domain.PlaceCandidate, error)

	// Available сообщает, настроен ли живой геокодер (есть токен)
	Available() bool
}
