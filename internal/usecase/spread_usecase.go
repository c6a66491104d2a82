package usecase

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/pkg/utils"
	"go.uber.org/zap"
)

const (
	// Субметровый джиттер первой станции группы
	firstStationJitter = 0.0005

	// Минимальное расстояние между разведёнными точками группы
	spreadMinDistance = 0.01

	maxSpreadAttempts = 100

	spreadRadiusDefault = 0.5
)

// Радиус разброса (в градусах) по типу локации
var spreadRadius = map[string]float64{
	"country":      2.0,
	"region":       1.0,
	"city":         0.5,
	"town":         0.3,
	"village":      0.1,
	"neighborhood": 0.05,
}

// SpreadUsecase разводит станции, попавшие в одну точку, по кругу
// вокруг общей базовой позиции, чтобы маркеры на карте оставались
// различимыми. Первая станция группы сохраняет исходную позицию
// (с субметровым джиттером).
type SpreadUsecase struct {
	rng    *rand.Rand
	logger *zap.Logger
}

func NewSpreadUsecase(rng *rand.Rand, logger *zap.Logger) *SpreadUsecase {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &SpreadUsecase{rng: rng, logger: logger}
}

// groupKey группирует записи по координате, округлённой до 3 знаков
// (~111м на экваторе), и типу локации
func groupKey(rec *domain.GeocodedStation) string {
	locType := strings.ToLower(rec.LocationType)
	if locType == "" {
		locType = string(rec.Granularity())
	}
	return fmt.Sprintf("%.3f|%.3f|%s",
		utils.RoundCoord(rec.Latitude), utils.RoundCoord(rec.Longitude), locType)
}

func radiusFor(rec *domain.GeocodedStation) float64 {
	locType := strings.ToLower(rec.LocationType)
	if locType == "" {
		locType = string(rec.Granularity())
	}
	if r, ok := spreadRadius[locType]; ok {
		return r
	}
	return spreadRadiusDefault
}

// Spread возвращает итоговую координату для каждой записи по UUID.
// Записи, делящие округлённую координату и тип локации, разводятся;
// порядок внутри группы - порядок появления во входе (first wins).
func (u *SpreadUsecase) Spread(records []domain.GeocodedStation) map[string]domain.Coordinate {
	groups := make(map[string][]int)
	var order []string
	for i := range records {
		key := groupKey(&records[i])
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	result := make(map[string]domain.Coordinate, len(records))
	for _, key := range order {
		u.spreadGroup(records, groups[key], result)
	}
	return result
}

func (u *SpreadUsecase) spreadGroup(records []domain.GeocodedStation, indexes []int, result map[string]domain.Coordinate) {
	first := &records[indexes[0]]
	baseLat, baseLon := first.Latitude, first.Longitude

	placed := make([]domain.Coordinate, 0, len(indexes))

	// Первая станция группы остаётся на месте с субметровым джиттером
	lat, lon := utils.ClampCoordinates(
		baseLat+(u.rng.Float64()*2-1)*firstStationJitter,
		baseLon+(u.rng.Float64()*2-1)*firstStationJitter,
	)
	result[first.UUID] = domain.Coordinate{Lat: lat, Lon: lon}
	placed = append(placed, domain.Coordinate{Lat: lat, Lon: lon})

	for _, idx := range indexes[1:] {
		rec := &records[idx]
		coord := u.placeInCircle(baseLat, baseLon, radiusFor(rec), placed)
		result[rec.UUID] = coord
		placed = append(placed, coord)
	}
}

// placeInCircle сэмплирует точку в круге заданного радиуса вокруг
// базы, отбраковывая слишком близкие к уже размещённым; после
// исчерпания попыток берётся небольшой джиттер вокруг базы
func (u *SpreadUsecase) placeInCircle(baseLat, baseLon, radius float64, placed []domain.Coordinate) domain.Coordinate {
	for attempt := 0; attempt < maxSpreadAttempts; attempt++ {
		angle := u.rng.Float64() * 2 * math.Pi
		dist := radius * math.Sqrt(u.rng.Float64())

		lat := baseLat + dist*math.Cos(angle)
		lon := baseLon + dist*math.Sin(angle)
		if !utils.ValidateCoordinates(lat, lon) {
			continue
		}

		tooClose := false
		for _, c := range placed {
			if utils.DegreeDistance(lat, lon, c.Lat, c.Lon) < spreadMinDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			return domain.Coordinate{Lat: lat, Lon: lon}
		}
	}

	u.logger.Debug("Spread attempts exhausted, falling back to base jitter",
		zap.Float64("base_lat", baseLat),
		zap.Float64("base_lon", baseLon))

	lat, lon := utils.ClampCoordinates(
		baseLat+(u.rng.Float64()*2-1)*pointJitter,
		baseLon+(u.rng.Float64()*2-1)*pointJitter,
	)
	return domain.Coordinate{Lat: lat, Lon: lon}
}

// Merge вливает пакет заранее геокодированных записей в исходную
// коллекцию станций: дубликаты отбрасываются (last-write по
// отметке времени), координаты разводятся, станции заменяются
// производными копиями с провенансом
func (u *SpreadUsecase) Merge(stations []domain.Station, records []domain.GeocodedStation) []domain.Station {
	records = domain.DeduplicateGeocoded(records)
	coords := u.Spread(records)

	byUUID := make(map[string]*domain.GeocodedStation, len(records))
	for i := range records {
		byUUID[records[i].UUID] = &records[i]
	}

	merged := make([]domain.Station, len(stations))
	applied := 0
	for i, station := range stations {
		rec, ok := byUUID[station.UUID]
		if !ok {
			merged[i] = station
			continue
		}

		coord := coords[rec.UUID]
		merged[i] = station.WithPosition(coord.Lat, coord.Lon, rec.PlaceName, rec.Granularity())
		applied++
	}

	u.logger.Info("Geocoded batch merged",
		zap.Int("stations", len(stations)),
		zap.Int("records", len(records)),
		zap.Int("applied", applied))

	return merged
}
