package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/radiomap-service/internal/config"
	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// NewMapboxClient создает новый клиент для Mapbox Geocoding API
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

// Available сообщает, настроен ли токен доступа
func (c *client) Available() bool {
	return c.accessToken != ""
}

// geocodeResponse - ответ Mapbox Geocoding v5
type geocodeResponse struct {
	Features []struct {
		Center    []float64 `json:"center"`
		PlaceName string    `json:"place_name"`
		PlaceType []string  `json:"place_type"`
		BBox      []float64 `json:"bbox,omitempty"`
	} `json:"features"`
}

// Forward выполняет прямое геокодирование текстового запроса
func (c *client) Forward(ctx context.Context, query, types string, limit int) ([]domain.PlaceCandidate, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if !c.Available() {
		return nil, fmt.Errorf("mapbox access token is not configured")
	}

	requestURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&types=%s&limit=%d",
		c.baseURL,
		url.PathEscape(query),
		c.accessToken,
		url.QueryEscape(types),
		limit,
	)

	c.logger.Debug("Calling Mapbox Geocoding API",
		zap.String("query", query),
		zap.String("types", types),
		zap.Int("limit", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var geocodeResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geocodeResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	candidates := make([]domain.PlaceCandidate, 0, len(geocodeResp.Features))
	for _, feature := range geocodeResp.Features {
		if len(feature.Center) < 2 {
			continue
		}

		candidate := domain.PlaceCandidate{
			// Mapbox отдаёт center как [lng, lat]
			Longitude:  feature.Center[0],
			Latitude:   feature.Center[1],
			PlaceName:  feature.PlaceName,
			PlaceTypes: feature.PlaceType,
		}

		if len(feature.BBox) == 4 {
			candidate.BBox = &domain.BoundingBox{
				West:  feature.BBox[0],
				South: feature.BBox[1],
				East:  feature.BBox[2],
				North: feature.BBox[3],
			}
		}

		candidates = append(candidates, candidate)
	}

	c.logger.Debug("Mapbox Geocoding API call successful",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}
