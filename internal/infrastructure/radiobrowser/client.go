package radiobrowser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/radiomap-service/internal/config"
	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewRadioBrowserClient создает новый клиент каталога Radio Browser
func NewRadioBrowserClient(cfg *config.RadioBrowserConfig, logger *zap.Logger) repository.DirectoryRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// stationJSON - станция в формате Radio Browser. geo_lat/geo_long
// могут приходить как null.
type stationJSON struct {
	StationUUID string   `json:"stationuuid"`
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countrycode"`
	State       string   `json:"state"`
	Language    string   `json:"language"`
	Tags        string   `json:"tags"`
	Votes       int      `json:"votes"`
	Bitrate     int      `json:"bitrate"`
	URLResolved string   `json:"url_resolved"`
	Homepage    string   `json:"homepage"`
	Favicon     string   `json:"favicon"`
	GeoLat      *float64 `json:"geo_lat"`
	GeoLong     *float64 `json:"geo_long"`
}

func (s *stationJSON) toDomain() domain.Station {
	station := domain.Station{
		UUID:        s.StationUUID,
		Name:        s.Name,
		Country:     s.Country,
		CountryCode: s.CountryCode,
		State:       s.State,
		Language:    s.Language,
		Tags:        s.Tags,
		Votes:       s.Votes,
		Bitrate:     s.Bitrate,
		StreamURL:   s.URLResolved,
		Homepage:    s.Homepage,
		Favicon:     s.Favicon,
	}
	if s.GeoLat != nil {
		station.GeoLat = *s.GeoLat
	}
	if s.GeoLong != nil {
		station.GeoLong = *s.GeoLong
	}
	return station
}

// Search возвращает станции по фильтру каталога.
// MinVotes фильтруется на клиенте: у Radio Browser нет такого параметра.
func (c *client) Search(ctx context.Context, filter domain.StationFilter) ([]domain.Station, error) {
	params := url.Values{}
	if filter.Country != "" {
		params.Set("country", filter.Country)
	}
	if filter.Tag != "" {
		params.Set("tag", filter.Tag)
	}
	if filter.Language != "" {
		params.Set("language", filter.Language)
	}
	if filter.Name != "" {
		params.Set("name", filter.Name)
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		params.Set("offset", strconv.Itoa(filter.Offset))
	}
	params.Set("order", "votes")
	params.Set("reverse", "true")
	params.Set("hidebroken", "true")

	stations, err := c.fetchStations(ctx, fmt.Sprintf("%s/stations/search?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	if filter.MinVotes <= 0 {
		return stations, nil
	}

	filtered := make([]domain.Station, 0, len(stations))
	for _, s := range stations {
		if s.Votes >= filter.MinVotes {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

// ListWithoutGeo возвращает страницу станций без координат
func (c *client) ListWithoutGeo(ctx context.Context, offset, limit int) ([]domain.Station, error) {
	requestURL := fmt.Sprintf("%s/stations?offset=%d&limit=%d&has_geo_info=false",
		c.baseURL, offset, limit)
	return c.fetchStations(ctx, requestURL)
}

// RegisterClick регистрирует прослушивание станции
func (c *client) RegisterClick(ctx context.Context, stationUUID string) error {
	requestURL := fmt.Sprintf("%s/url/%s", c.baseURL, url.PathEscape(stationUUID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to register click",
			zap.String("station_uuid", stationUUID),
			zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("radio browser API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("Click registered", zap.String("station_uuid", stationUUID))
	return nil
}

func (c *client) fetchStations(ctx context.Context, requestURL string) ([]domain.Station, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "radiomap-service/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Radio Browser API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("radio browser API error: status %d", resp.StatusCode)
	}

	var raw []stationJSON
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	stations := make([]domain.Station, 0, len(raw))
	for _, s := range raw {
		if s.StationUUID == "" {
			continue
		}
		stations = append(stations, s.toDomain())
	}

	return stations, nil
}
