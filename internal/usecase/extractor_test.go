package usecase

import (
	"testing"

	"github.com/radiomap-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationExtractor_Extract(t *testing.T) {
	extractor := NewLocationExtractor()

	tests := []struct {
		name        string
		station     domain.Station
		expectFirst string
		expectTypes []domain.QueryType
		description string
	}{
		{
			name: "bracket content has highest priority",
			station: domain.Station{
				Name:    "Hit Music (Barcelona)",
				Country: "Spain",
			},
			expectFirst: "Barcelona",
			expectTypes: []domain.QueryType{domain.QueryTypeExtracted},
			description: "bracketed substrings should come before any tokens",
		},
		{
			name: "city keyword adjacency",
			station: domain.Station{
				Name:    "Moscow city sound",
				Country: "Russia",
			},
			expectFirst: "moscow",
			expectTypes: []domain.QueryType{domain.QueryTypeCity},
			description: "word before a city keyword is a city candidate",
		},
		{
			name: "village keyword adjacency reversed",
			station: domain.Station{
				Name: "село Вятское",
			},
			expectFirst: "вятское",
			expectTypes: []domain.QueryType{domain.QueryTypeVillage},
			description: "word after a village keyword is a village candidate",
		},
		{
			name: "country appended as fallback",
			station: domain.Station{
				Name:    "FM 101.5",
				Country: "Germany",
			},
			expectFirst: "germany",
			expectTypes: []domain.QueryType{domain.QueryTypeCountry},
			description: "a name with no usable tokens degrades to the country",
		},
		{
			name: "country alias normalized",
			station: domain.Station{
				Name:    "Radio 1",
				Country: "USA",
			},
			expectFirst: "united states",
			expectTypes: []domain.QueryType{domain.QueryTypeCountry},
			description: "country fallback goes through the alias table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractor.Extract(tt.station)

			require.NotEmpty(t, result.Candidates, tt.description)
			assert.Equal(t, tt.expectFirst, result.Candidates[0].Location, tt.description)
			assert.Equal(t, tt.expectTypes[0], result.Candidates[0].Type, tt.description)
		})
	}
}

func TestLocationExtractor_RadioParisScenario(t *testing.T) {
	extractor := NewLocationExtractor()

	result := extractor.Extract(domain.Station{
		Name:    "Radio Paris (FM)",
		Country: "France",
	})

	// "(FM)" is a radio keyword, not a location; "paris" must still be
	// the first candidate, ahead of the country fallback.
	require.NotEmpty(t, result.Candidates)
	assert.Equal(t, "paris", result.Candidates[0].Location)
	assert.Equal(t, domain.QueryTypePotential, result.Candidates[0].Type)

	last := result.Candidates[len(result.Candidates)-1]
	assert.Equal(t, "france", last.Location)
	assert.Equal(t, domain.QueryTypeCountry, last.Type)
}

func TestLocationExtractor_Weights(t *testing.T) {
	extractor := NewLocationExtractor()

	result := extractor.Extract(domain.Station{
		Name:    "Voice of Lisboa (Portugal)",
		Country: "Portugal",
	})

	require.NotEmpty(t, result.Candidates)

	// Bracket candidate carries weight 3, tokens weight 1, and the
	// country is already present so no fallback is appended
	assert.Equal(t, "Portugal", result.Candidates[0].Location)
	assert.Equal(t, 3, result.Candidates[0].Weight)

	for _, c := range result.Candidates {
		assert.NotEqual(t, domain.QueryTypeCountry, c.Type,
			"country already present among candidates, fallback must be skipped")
	}

	total := 0
	for _, c := range result.Candidates {
		total += c.Weight
	}
	assert.Equal(t, total, result.Score)
}

func TestLocationExtractor_FiltersNoise(t *testing.T) {
	extractor := NewLocationExtractor()

	tests := []struct {
		name     string
		station  domain.Station
		excluded []string
	}{
		{
			name:     "blacklisted brand words",
			station:  domain.Station{Name: "Energy Hit Music Berlin"},
			excluded: []string{"energy", "hit", "music"},
		},
		{
			name:     "frequencies and short tokens",
			station:  domain.Station{Name: "101.5 FM XY Milano"},
			excluded: []string{"101", "xy", "fm"},
		},
		{
			name:     "russian brand words",
			station:  domain.Station{Name: "Русское Радио Европа Плюс Казань"},
			excluded: []string{"европа", "плюс", "радио"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractor.Extract(tt.station)
			for _, c := range result.Candidates {
				for _, bad := range tt.excluded {
					assert.NotEqual(t, bad, c.Location)
				}
			}
		})
	}
}

func TestLocationExtractor_StateUsedAsRegion(t *testing.T) {
	extractor := NewLocationExtractor()

	result := extractor.Extract(domain.Station{
		Name:    "KQED",
		Country: "United States",
		State:   "California",
	})

	found := false
	for _, c := range result.Candidates {
		if c.Location == "California" && c.Type == domain.QueryTypeRegion {
			found = true
		}
	}
	assert.True(t, found, "station state should become a region candidate")
}

func TestScorePlaceLikelihood(t *testing.T) {
	tests := []struct {
		word        string
		positive    bool
		description string
	}{
		{"kazan", true, "plausible toponym keeps a positive score"},
		{"the", false, "stop words score below zero"},
		{"и", false, "single-letter stop words are rejected"},
		{"springville", true, "long word with a place suffix scores high"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			score := scorePlaceLikelihood(tt.word)
			if tt.positive {
				assert.Greater(t, score, 0, tt.description)
			} else {
				assert.LessOrEqual(t, score, 0, tt.description)
			}
		})
	}
}
