package usecase

import (
	"math/rand"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/pkg/utils"
)

const (
	// Минимальные расстояния (в градусах) между назначенными точками
	minDistanceCountry = 0.1
	minDistanceDefault = 0.01

	// Джиттер точки без ограничивающего прямоугольника
	pointJitter = 0.005

	maxPlacementAttempts = 50
)

// PositionAssigner выбирает итоговые координаты для результата
// геокодирования, разводя станции внутри общего ограничивающего
// прямоугольника. Это best-effort разрежение: после исчерпания
// попыток коллизия допустима.
type PositionAssigner struct {
	rng *rand.Rand
}

func NewPositionAssigner(rng *rand.Rand) *PositionAssigner {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &PositionAssigner{rng: rng}
}

// Assign возвращает (lat, lon) для результата с учётом уже занятых
// координат текущего прогона. При наличии bbox точка сэмплируется
// внутри него с отбраковкой слишком близких к занятым; иначе берётся
// сама точка с небольшим джиттером.
func (a *PositionAssigner) Assign(result *domain.GeoResult, taken []domain.Coordinate) (float64, float64) {
	if result.BBox == nil {
		lat := result.Latitude + (a.rng.Float64()*2-1)*pointJitter
		lon := result.Longitude + (a.rng.Float64()*2-1)*pointJitter
		return utils.ClampCoordinates(lat, lon)
	}

	minDistance := minDistanceDefault
	if result.Granularity == domain.GranularityCountry {
		minDistance = minDistanceCountry
	}

	box := result.BBox
	var lat, lon float64
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		lat = box.South + a.rng.Float64()*(box.North-box.South)
		lon = box.West + a.rng.Float64()*(box.East-box.West)

		if !utils.ValidateCoordinates(lat, lon) {
			continue
		}
		if a.farEnough(lat, lon, taken, minDistance) {
			return lat, lon
		}
	}

	// Все попытки исчерпаны - принимаем последний сэмпл
	return utils.ClampCoordinates(lat, lon)
}

func (a *PositionAssigner) farEnough(lat, lon float64, taken []domain.Coordinate, minDistance float64) bool {
	for _, c := range taken {
		if utils.DegreeDistance(lat, lon, c.Lat, c.Lon) < minDistance {
			return false
		}
	}
	return true
}
