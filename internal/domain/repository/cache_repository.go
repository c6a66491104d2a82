package repository

import (
	"context"
	"time"
)

// Ключи кеша в durable-хранилище
const (
	GeocodeCacheKey   = "geocoding:cache"
	ProcessedCacheKey = "geocoding:processed"
	FavoritesKey      = "favorites:stations"
)

// CacheRepository определяет методы для работы с durable key-value
// хранилищем (кеш геокодирования, обработанные станции, избранное)
type CacheRepository interface {
	// Get получает значение из кеша по ключу. Возвращает (nil, nil)
	// при промахе.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL. Нулевой TTL означает
	// хранение без срока жизни.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)
}
