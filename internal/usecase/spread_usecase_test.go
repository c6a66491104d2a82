package usecase

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSpread(seed int64) *SpreadUsecase {
	return NewSpreadUsecase(rand.New(rand.NewSource(seed)), zap.NewNop())
}

func cityRecord(uuid string, lat, lon float64) domain.GeocodedStation {
	return domain.GeocodedStation{
		UUID:         uuid,
		LocationType: "city",
		Latitude:     lat,
		Longitude:    lon,
		PlaceName:    "Paris, France",
		Confidence:   domain.ConfidenceHigh,
	}
}

func TestSpreadUsecase_FirstStationKeepsPosition(t *testing.T) {
	uc := newTestSpread(42)

	records := []domain.GeocodedStation{
		cityRecord("uuid-1", 48.8566, 2.3522),
		cityRecord("uuid-2", 48.8566, 2.3522),
		cityRecord("uuid-3", 48.8566, 2.3522),
	}

	coords := uc.Spread(records)

	first := coords["uuid-1"]
	assert.InDelta(t, 48.8566, first.Lat, firstStationJitter)
	assert.InDelta(t, 2.3522, first.Lon, firstStationJitter)
}

func TestSpreadUsecase_GroupMembersPairwiseDistinct(t *testing.T) {
	uc := newTestSpread(7)

	var records []domain.GeocodedStation
	for i := 0; i < 20; i++ {
		records = append(records, cityRecord(fmt.Sprintf("uuid-%d", i), 48.8566, 2.3522))
	}

	coords := uc.Spread(records)
	require.Len(t, coords, 20)

	// Every placement after the first must clear the minimum distance
	// from every other one
	var placed []domain.Coordinate
	for i := 1; i < 20; i++ {
		c := coords[fmt.Sprintf("uuid-%d", i)]
		for _, prev := range placed {
			assert.GreaterOrEqual(t,
				utils.DegreeDistance(c.Lat, c.Lon, prev.Lat, prev.Lon),
				spreadMinDistance)
		}
		placed = append(placed, c)
	}
}

func TestSpreadUsecase_RadiusByLocationType(t *testing.T) {
	tests := []struct {
		locationType string
		maxRadius    float64
	}{
		{"country", 2.0},
		{"region", 1.0},
		{"city", 0.5},
		{"town", 0.3},
		{"village", 0.1},
		{"neighborhood", 0.05},
		{"unknown", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.locationType, func(t *testing.T) {
			uc := newTestSpread(3)

			var records []domain.GeocodedStation
			for i := 0; i < 10; i++ {
				records = append(records, domain.GeocodedStation{
					UUID:         fmt.Sprintf("uuid-%d", i),
					LocationType: tt.locationType,
					Latitude:     50.0,
					Longitude:    10.0,
					Confidence:   domain.ConfidenceHigh,
				})
			}

			coords := uc.Spread(records)
			for uuid, c := range coords {
				if uuid == "uuid-0" {
					continue
				}
				dist := utils.DegreeDistance(c.Lat, c.Lon, 50.0, 10.0)
				// Fallback jitter placements stay near the base and
				// are always within any radius from the table
				assert.LessOrEqual(t, dist, tt.maxRadius+pointJitter)
			}
		})
	}
}

func TestSpreadUsecase_DistinctGroupsIndependent(t *testing.T) {
	uc := newTestSpread(9)

	records := []domain.GeocodedStation{
		cityRecord("paris-1", 48.857, 2.352),
		cityRecord("paris-2", 48.857, 2.352),
		cityRecord("berlin-1", 52.520, 13.405),
	}

	coords := uc.Spread(records)

	berlin := coords["berlin-1"]
	assert.InDelta(t, 52.520, berlin.Lat, firstStationJitter,
		"the only member of its group keeps its position")
}

func TestSpreadUsecase_GranularityDistinguishesGroups(t *testing.T) {
	uc := newTestSpread(13)

	// Same rounded coordinate but different location types form two
	// groups, each keeping its first member in place
	records := []domain.GeocodedStation{
		{UUID: "a", LocationType: "city", Latitude: 50, Longitude: 10, Confidence: domain.ConfidenceHigh},
		{UUID: "b", LocationType: "country", Latitude: 50, Longitude: 10, Confidence: domain.ConfidenceLow},
	}

	coords := uc.Spread(records)
	assert.InDelta(t, 50.0, coords["a"].Lat, firstStationJitter)
	assert.InDelta(t, 50.0, coords["b"].Lat, firstStationJitter)
}

func TestSpreadUsecase_Idempotence(t *testing.T) {
	uc := newTestSpread(21)

	var records []domain.GeocodedStation
	for i := 0; i < 15; i++ {
		records = append(records, cityRecord(fmt.Sprintf("uuid-%d", i), 48.8566, 2.3522))
	}

	coords := uc.Spread(records)

	// Feed the spread output back in as a new pre-geocoded batch
	second := make([]domain.GeocodedStation, 0, len(records))
	for _, rec := range records {
		c := coords[rec.UUID]
		rec.Latitude = c.Lat
		rec.Longitude = c.Lon
		second = append(second, rec)
	}

	recoords := uc.Spread(second)

	// Already-spread stations land in singleton groups and stay put
	// (within the first-station jitter), unless two placements happen
	// to round to the same 3-decimal key
	groupSizes := make(map[string]int)
	for i := range second {
		groupSizes[groupKey(&second[i])]++
	}
	for i := range second {
		if groupSizes[groupKey(&second[i])] > 1 {
			continue
		}
		c := recoords[second[i].UUID]
		assert.InDelta(t, second[i].Latitude, c.Lat, firstStationJitter)
		assert.InDelta(t, second[i].Longitude, c.Lon, firstStationJitter)
	}
}

func TestSpreadUsecase_Merge(t *testing.T) {
	uc := newTestSpread(17)

	stations := []domain.Station{
		{UUID: "uuid-1", Name: "Radio One", Country: "France"},
		{UUID: "uuid-2", Name: "Radio Two", Country: "France"},
		{UUID: "uuid-3", Name: "Radio Three", Country: "Germany"},
	}

	records := []domain.GeocodedStation{
		cityRecord("uuid-1", 48.8566, 2.3522),
		{
			UUID:         "uuid-2",
			LocationType: "potential",
			Latitude:     47.0,
			Longitude:    3.0,
			PlaceName:    "Nevers, France",
			Confidence:   domain.ConfidenceMedium,
		},
	}

	merged := uc.Merge(stations, records)
	require.Len(t, merged, 3)

	assert.Equal(t, "Paris, France", merged[0].PlaceName)
	assert.Equal(t, domain.GranularityCity, merged[0].Granularity)
	assert.False(t, merged[0].NeedsGeocoding())

	assert.Equal(t, domain.GranularityRegion, merged[1].Granularity,
		"medium confidence maps to region granularity")

	assert.True(t, merged[2].NeedsGeocoding(), "stations without a record stay untouched")
	assert.Empty(t, merged[2].PlaceName)

	// Originals are never mutated in place
	assert.True(t, stations[0].NeedsGeocoding())
}

func TestSpreadUsecase_MergeDeduplicatesByTimestamp(t *testing.T) {
	uc := newTestSpread(19)

	stations := []domain.Station{{UUID: "uuid-1", Name: "Radio One"}}

	older := cityRecord("uuid-1", 10.0, 10.0)
	older.Timestamp = 100
	older.PlaceName = "Old Place"
	newer := cityRecord("uuid-1", 20.0, 20.0)
	newer.Timestamp = 200
	newer.PlaceName = "New Place"

	merged := uc.Merge(stations, []domain.GeocodedStation{older, newer})

	require.Len(t, merged, 1)
	assert.Equal(t, "New Place", merged[0].PlaceName)
	assert.InDelta(t, 20.0, merged[0].GeoLat, firstStationJitter)
}
