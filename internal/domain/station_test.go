package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStation_NeedsGeocoding(t *testing.T) {
	tests := []struct {
		name        string
		station     Station
		expected    bool
		description string
	}{
		{
			name:        "no coordinates at all",
			station:     Station{UUID: "a", Name: "Radio One"},
			expected:    true,
			description: "Zero values mean the directory has no position",
		},
		{
			name:        "explicit zero pair",
			station:     Station{UUID: "b", GeoLat: 0, GeoLong: 0},
			expected:    true,
			description: "(0, 0) is treated as absent, not as a valid equatorial position",
		},
		{
			name:        "valid coordinates",
			station:     Station{UUID: "c", GeoLat: 48.8566, GeoLong: 2.3522},
			expected:    false,
			description: "A positioned station must not be re-geocoded",
		},
		{
			name:        "zero latitude only",
			station:     Station{UUID: "d", GeoLat: 0, GeoLong: 11.25},
			expected:    false,
			description: "A station on the equator with real longitude is positioned",
		},
		{
			name:        "zero longitude only",
			station:     Station{UUID: "e", GeoLat: 51.5, GeoLong: 0},
			expected:    false,
			description: "A station on the prime meridian with real latitude is positioned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.station.NeedsGeocoding(), tt.description)
		})
	}
}

func TestStation_WithPosition(t *testing.T) {
	original := Station{UUID: "abc", Name: "Radio Test", Country: "France"}

	updated := original.WithPosition(48.85, 2.35, "Paris, France", GranularityCity)

	assert.Equal(t, 48.85, updated.GeoLat)
	assert.Equal(t, 2.35, updated.GeoLong)
	assert.Equal(t, "Paris, France", updated.PlaceName)
	assert.Equal(t, GranularityCity, updated.Granularity)

	// Original must stay untouched
	assert.Equal(t, 0.0, original.GeoLat)
	assert.Equal(t, 0.0, original.GeoLong)
	assert.Empty(t, original.PlaceName)
}

func TestStation_TagList(t *testing.T) {
	s := Station{Tags: "pop, rock,,jazz "}
	assert.Equal(t, []string{"pop", "rock", "jazz"}, s.TagList())

	empty := Station{}
	assert.Nil(t, empty.TagList())
}
