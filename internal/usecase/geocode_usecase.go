package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"go.uber.org/zap"
)

// geocodeResultLimit - сколько кандидатов запрашивать у геокодера,
// чтобы было из чего выбирать при сверке страны
const geocodeResultLimit = 5

// rateLimiter ограничивает число внешних вызовов скользящим окном
// в одну минуту. При исчерпании лимита вызов засыпает до конца окна.
// Часы и сон инжектируются для тестов.
type rateLimiter struct {
	maxCalls    int
	calls       int
	windowStart time.Time

	now    func() time.Time
	sleep  func(time.Duration)
	logger *zap.Logger
}

func newRateLimiter(maxCalls int, logger *zap.Logger) *rateLimiter {
	return &rateLimiter{
		maxCalls: maxCalls,
		now:      time.Now,
		sleep:    time.Sleep,
		logger:   logger,
	}
}

// acquire учитывает один внешний вызов, при необходимости дождавшись
// начала следующего окна
func (r *rateLimiter) acquire() {
	now := r.now()
	if r.windowStart.IsZero() || now.Sub(r.windowStart) > time.Minute {
		r.calls = 0
		r.windowStart = now
	}

	if r.calls >= r.maxCalls {
		wait := time.Minute - now.Sub(r.windowStart)
		if wait > 0 {
			r.logger.Info("Rate limit reached, pausing",
				zap.Duration("wait", wait))
			r.sleep(wait)
		}
		r.calls = 0
		r.windowStart = r.now()
	}

	r.calls++
}

// GeocodeUsecase превращает строку-кандидат в координаты: сначала
// кеш, затем статический резерв по странам (когда живой геокодер не
// настроен), затем внешний геокодер со сверкой страны. Любая ошибка
// внешнего вызова логируется и считается "не найдено".
type GeocodeUsecase struct {
	geocoder repository.GeocoderRepository
	cache    *GeocodeCache
	limiter  *rateLimiter
	calls    int
	logger   *zap.Logger
}

func NewGeocodeUsecase(geocoder repository.GeocoderRepository, cache *GeocodeCache, maxCallsPerMinute int, logger *zap.Logger) *GeocodeUsecase {
	return &GeocodeUsecase{
		geocoder: geocoder,
		cache:    cache,
		limiter:  newRateLimiter(maxCallsPerMinute, logger),
		logger:   logger,
	}
}

// Geocode возвращает результат для кандидата или (nil, false).
// Свежая запись кеша никогда не приводит к внешнему вызову.
func (u *GeocodeUsecase) Geocode(ctx context.Context, location, country string, queryType domain.QueryType) (*domain.GeoResult, bool) {
	key := domain.GeocodeCacheKey(location, country, queryType)
	if result, ok := u.cache.Get(key); ok {
		return result, true
	}

	if !u.geocoder.Available() {
		return u.fallback(key, location, country)
	}

	result, ok := u.forward(ctx, location, country, queryType)
	if !ok {
		return nil, false
	}

	u.cache.Put(key, *result)
	return result, true
}

// Calls возвращает число внешних вызовов за время жизни usecase
func (u *GeocodeUsecase) Calls() int {
	return u.calls
}

// fallback ищет страну в статической таблице центроидов - сначала по
// самому кандидату, затем по стране станции
func (u *GeocodeUsecase) fallback(key, location, country string) (*domain.GeoResult, bool) {
	result, ok := domain.CountryFallback(location)
	if !ok && country != "" {
		result, ok = domain.CountryFallback(country)
	}
	if !ok {
		return nil, false
	}

	u.cache.Put(key, *result)
	return result, true
}

func (u *GeocodeUsecase) forward(ctx context.Context, location, country string, queryType domain.QueryType) (*domain.GeoResult, bool) {
	query := strings.TrimSpace(location)
	if country != "" && !strings.Contains(strings.ToLower(query), strings.ToLower(country)) {
		query += ", " + country
	}

	u.limiter.acquire()
	u.calls++

	candidates, err := u.geocoder.Forward(ctx, query, queryType.MapboxTypes(), geocodeResultLimit)
	if err != nil {
		u.logger.Warn("Geocoding failed",
			zap.String("location", location),
			zap.Error(err))
		return nil, false
	}

	var best *domain.GeoResult
	for i := range candidates {
		candidate := &candidates[i]

		countryMatch := matchesCountry(candidate.PlaceName, country)
		if country != "" && !countryMatch {
			u.logger.Debug("Country mismatch, candidate skipped",
				zap.String("expected", country),
				zap.String("place_name", candidate.PlaceName))
			continue
		}

		result := &domain.GeoResult{
			Latitude:    candidate.Latitude,
			Longitude:   candidate.Longitude,
			PlaceName:   candidate.PlaceName,
			BBox:        candidate.BBox,
			Granularity: candidate.Granularity(),
			Confidence:  confidenceFor(candidate.PlaceTypes, countryMatch),
			Method:      "mapbox",
		}

		if best == nil || (countryMatch && result.Confidence == domain.ConfidenceHigh) {
			best = result
			if countryMatch && result.Confidence == domain.ConfidenceHigh {
				break
			}
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}

// matchesCountry сверяет последний компонент place_name с вариантами
// написания ожидаемой страны
func matchesCountry(placeName, country string) bool {
	if country == "" {
		return true
	}

	parts := strings.Split(placeName, ",")
	actual := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	for _, variation := range domain.CountryVariations(country) {
		if strings.Contains(actual, variation) {
			return true
		}
	}
	return false
}

func confidenceFor(placeTypes []string, countryMatch bool) domain.Confidence {
	for _, t := range placeTypes {
		switch t {
		case "place", "locality":
			if countryMatch {
				return domain.ConfidenceHigh
			}
			return domain.ConfidenceMedium
		case "region":
			if countryMatch {
				return domain.ConfidenceMedium
			}
			return domain.ConfidenceLow
		}
	}
	return domain.ConfidenceLow
}
