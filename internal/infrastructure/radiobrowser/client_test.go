package radiobrowser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/radiomap-service/internal/config"
	"github.com/radiomap-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_Search(t *testing.T) {
	tests := []struct {
		name        string
		filter      domain.StationFilter
		response    string
		statusCode  int
		expectCount int
		expectError bool
		description string
	}{
		{
			name:   "successful search",
			filter: domain.StationFilter{Country: "France", Limit: 10},
			response: `[
				{"stationuuid": "uuid-1", "name": "Radio Paris", "country": "France", "votes": 120, "geo_lat": 48.8566, "geo_long": 2.3522},
				{"stationuuid": "uuid-2", "name": "FIP", "country": "France", "votes": 80, "geo_lat": null, "geo_long": null}
			]`,
			statusCode:  http.StatusOK,
			expectCount: 2,
			expectError: false,
			description: "should return all stations from response",
		},
		{
			name:   "min votes filtered client side",
			filter: domain.StationFilter{Country: "France", MinVotes: 100},
			response: `[
				{"stationuuid": "uuid-1", "name": "Radio Paris", "country": "France", "votes": 120},
				{"stationuuid": "uuid-2", "name": "FIP", "country": "France", "votes": 80}
			]`,
			statusCode:  http.StatusOK,
			expectCount: 1,
			expectError: false,
			description: "stations below the vote threshold should be dropped",
		},
		{
			name:        "stations without uuid skipped",
			filter:      domain.StationFilter{},
			response:    `[{"stationuuid": "", "name": "Broken"}, {"stationuuid": "uuid-1", "name": "OK"}]`,
			statusCode:  http.StatusOK,
			expectCount: 1,
			expectError: false,
			description: "entries without a UUID are unusable and should be skipped",
		},
		{
			name:        "API error",
			filter:      domain.StationFilter{},
			response:    `{"error": "service unavailable"}`,
			statusCode:  http.StatusServiceUnavailable,
			expectCount: 0,
			expectError: true,
			description: "non-200 responses should surface as errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/stations/search")
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			c := NewRadioBrowserClient(&config.RadioBrowserConfig{
				BaseURL:        server.URL,
				RequestTimeout: 5,
			}, zap.NewNop())

			stations, err := c.Search(context.Background(), tt.filter)

			if tt.expectError {
				assert.Error(t, err, tt.description)
				return
			}
			require.NoError(t, err, tt.description)
			assert.Len(t, stations, tt.expectCount, tt.description)
		})
	}
}

func TestClient_Search_NullCoordinatesMapToZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"stationuuid": "uuid-1", "name": "FIP", "geo_lat": null, "geo_long": null}]`))
	}))
	defer server.Close()

	c := NewRadioBrowserClient(&config.RadioBrowserConfig{BaseURL: server.URL, RequestTimeout: 5}, zap.NewNop())

	stations, err := c.Search(context.Background(), domain.StationFilter{})
	require.NoError(t, err)
	require.Len(t, stations, 1)

	assert.Zero(t, stations[0].GeoLat)
	assert.Zero(t, stations[0].GeoLong)
	assert.True(t, stations[0].NeedsGeocoding())
}

func TestClient_ListWithoutGeo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("offset"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "false", r.URL.Query().Get("has_geo_info"))
		w.Write([]byte(`[{"stationuuid": "uuid-1", "name": "Radio One", "country": "Germany"}]`))
	}))
	defer server.Close()

	c := NewRadioBrowserClient(&config.RadioBrowserConfig{BaseURL: server.URL, RequestTimeout: 5}, zap.NewNop())

	stations, err := c.ListWithoutGeo(context.Background(), 100, 50)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "Radio One", stations[0].Name)
}

func TestClient_RegisterClick(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		expectError bool
	}{
		{name: "successful click", statusCode: http.StatusOK, expectError: false},
		{name: "station not found", statusCode: http.StatusNotFound, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/url/uuid-1")
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(`{"ok": true}`))
			}))
			defer server.Close()

			c := NewRadioBrowserClient(&config.RadioBrowserConfig{BaseURL: server.URL, RequestTimeout: 5}, zap.NewNop())

			err := c.RegisterClick(context.Background(), "uuid-1")
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
