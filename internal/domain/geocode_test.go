package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGeocodeCacheKey(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		country   string
		queryType QueryType
		expected  string
	}{
		{
			name:      "location with country",
			location:  "Paris",
			country:   "France",
			queryType: QueryTypeCity,
			expected:  "paris|france|city",
		},
		{
			name:      "missing country falls back to global",
			location:  "Berlin",
			country:   "",
			queryType: QueryTypePotential,
			expected:  "berlin|global|potential",
		},
		{
			name:      "whitespace is trimmed",
			location:  " Madrid ",
			country:   " Spain ",
			queryType: QueryTypePlace,
			expected:  "madrid|spain|place",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GeocodeCacheKey(tt.location, tt.country, tt.queryType))
		})
	}
}

func TestGeocodeCacheEntry_Expired(t *testing.T) {
	fresh := GeocodeCacheEntry{Timestamp: time.Now().Add(-1 * time.Hour)}
	assert.False(t, fresh.Expired(24*time.Hour))

	stale := GeocodeCacheEntry{Timestamp: time.Now().Add(-25 * time.Hour)}
	assert.True(t, stale.Expired(24*time.Hour))
}

func TestBoundingBox_Contains(t *testing.T) {
	box := BoundingBox{West: -5.1, South: 41.3, East: 9.6, North: 51.1}

	assert.True(t, box.Contains(46.2, 2.2))
	assert.True(t, box.Contains(41.3, -5.1), "edges are inclusive")
	assert.False(t, box.Contains(52.0, 2.2))
	assert.False(t, box.Contains(46.2, 10.0))
}

func TestPlaceCandidate_Granularity(t *testing.T) {
	tests := []struct {
		name       string
		placeTypes []string
		expected   Granularity
	}{
		{"country type", []string{"country"}, GranularityCountry},
		{"locality maps to village", []string{"locality"}, GranularityVillage},
		{"neighborhood maps to village", []string{"neighborhood"}, GranularityVillage},
		{"place maps to city", []string{"place"}, GranularityCity},
		{"region stays region", []string{"region"}, GranularityRegion},
		{"unknown defaults to region", []string{"poi"}, GranularityRegion},
		{"empty defaults to region", nil, GranularityRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PlaceCandidate{PlaceTypes: tt.placeTypes}
			assert.Equal(t, tt.expected, c.Granularity())
		})
	}
}

func TestQueryType_MapboxTypes(t *testing.T) {
	assert.Equal(t, "place,locality", QueryTypeCity.MapboxTypes())
	assert.Equal(t, "country", QueryTypeCountry.MapboxTypes())
	assert.Equal(t, "place,locality,region,country", QueryTypePlace.MapboxTypes())
	assert.Equal(t, "place,locality,region,country", QueryType("unknown").MapboxTypes())
}
