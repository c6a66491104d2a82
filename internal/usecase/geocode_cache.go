package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"go.uber.org/zap"
)

// flushEvery - каждая N-я новая запись запускает фоновый сброс кеша
// в durable-хранилище
const flushEvery = 10

// GeocodeCache - кеш результатов геокодирования в памяти процесса,
// подгружаемый из durable-хранилища при создании. Протухшие записи
// отбрасываются при загрузке и при чтении; испорченный blob
// трактуется как пустой кеш.
type GeocodeCache struct {
	mu         sync.RWMutex
	entries    map[string]domain.GeocodeCacheEntry
	newEntries int

	storage repository.CacheRepository
	ttl     time.Duration
	logger  *zap.Logger
}

func NewGeocodeCache(ctx context.Context, storage repository.CacheRepository, ttl time.Duration, logger *zap.Logger) *GeocodeCache {
	c := &GeocodeCache{
		entries: make(map[string]domain.GeocodeCacheEntry),
		storage: storage,
		ttl:     ttl,
		logger:  logger,
	}
	c.load(ctx)
	return c
}

func (c *GeocodeCache) load(ctx context.Context) {
	data, err := c.storage.Get(ctx, repository.GeocodeCacheKey)
	if err != nil {
		c.logger.Warn("Failed to load geocode cache, starting empty", zap.Error(err))
		return
	}
	if data == nil {
		return
	}

	var stored map[string]domain.GeocodeCacheEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		c.logger.Warn("Malformed geocode cache blob, starting empty", zap.Error(err))
		return
	}

	dropped := 0
	for key, entry := range stored {
		if entry.Expired(c.ttl) {
			dropped++
			continue
		}
		c.entries[key] = entry
	}

	c.logger.Info("Geocode cache loaded",
		zap.Int("entries", len(c.entries)),
		zap.Int("expired_dropped", dropped))
}

// Get возвращает свежий результат по ключу кеша
func (c *GeocodeCache) Get(key string) (*domain.GeoResult, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.Expired(c.ttl) {
		return nil, false
	}

	result := entry.Result
	return &result, true
}

// Put сохраняет результат и периодически сбрасывает кеш в хранилище
// (fire-and-forget, ошибки только логируются)
func (c *GeocodeCache) Put(key string, result domain.GeoResult) {
	c.mu.Lock()
	c.entries[key] = domain.GeocodeCacheEntry{
		Result:    result,
		Timestamp: time.Now(),
	}
	c.newEntries++
	shouldFlush := c.newEntries%flushEvery == 0
	c.mu.Unlock()

	if shouldFlush {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := c.Flush(ctx); err != nil {
				c.logger.Warn("Background cache flush failed", zap.Error(err))
			}
		}()
	}
}

// Len возвращает число записей в кеше
func (c *GeocodeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush сохраняет весь кеш в durable-хранилище одним blob-ом
func (c *GeocodeCache) Flush(ctx context.Context) error {
	c.mu.RLock()
	data, err := json.Marshal(c.entries)
	c.mu.RUnlock()

	if err != nil {
		return err
	}

	if err := c.storage.Set(ctx, repository.GeocodeCacheKey, data, c.ttl); err != nil {
		return err
	}

	c.logger.Debug("Geocode cache flushed", zap.Int("entries", c.Len()))
	return nil
}
