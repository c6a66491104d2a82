package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"github.com/radiomap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const LimitMapStations = 5000

type stationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStationRepository(db *DB) repository.StationStoreRepository {
	return &stationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// UpsertBatch сохраняет пачку станций одной транзакцией.
// Существующая запись с тем же UUID полностью заменяется (last-write).
func (r *stationRepository) UpsertBatch(ctx context.Context, stations []domain.Station) error {
	if len(stations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		INSERT INTO stations (
			uuid, name, country, country_code, state, language, tags,
			votes, bitrate, stream_url, homepage, favicon,
			geo_lat, geo_long, place_name, granularity, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		ON CONFLICT (uuid) DO UPDATE SET
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			country_code = EXCLUDED.country_code,
			state = EXCLUDED.state,
			language = EXCLUDED.language,
			tags = EXCLUDED.tags,
			votes = EXCLUDED.votes,
			bitrate = EXCLUDED.bitrate,
			stream_url = EXCLUDED.stream_url,
			homepage = EXCLUDED.homepage,
			favicon = EXCLUDED.favicon,
			geo_lat = EXCLUDED.geo_lat,
			geo_long = EXCLUDED.geo_long,
			place_name = EXCLUDED.place_name,
			granularity = EXCLUDED.granularity,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	for _, s := range stations {
		if s.UUID == "" {
			continue
		}
		_, err := tx.ExecContext(ctx, query,
			s.UUID, s.Name, s.Country, s.CountryCode, s.State, s.Language,
			pq.Array(s.TagList()),
			s.Votes, s.Bitrate, s.StreamURL, s.Homepage, s.Favicon,
			s.GeoLat, s.GeoLong, s.PlaceName, string(s.Granularity), now,
		)
		if err != nil {
			r.logger.Error("Failed to upsert station",
				zap.String("uuid", s.UUID),
				zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Debug("Stations upserted", zap.Int("count", len(stations)))
	return nil
}

func (r *stationRepository) GetByUUID(ctx context.Context, uuid string) (*domain.Station, error) {
	query := `
		SELECT
			uuid, name, country, country_code, state, language, tags,
			votes, bitrate, stream_url, homepage, favicon,
			geo_lat, geo_long, place_name, granularity
		FROM stations
		WHERE uuid = $1
	`

	station, err := r.scanStation(r.db.QueryRowContext(ctx, query, uuid))
	if err == sql.ErrNoRows {
		return nil, errors.ErrStationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get station by UUID", zap.String("uuid", uuid), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return station, nil
}

// ListByBounds возвращает станции внутри прямоугольника карты,
// отсортированные по голосам
func (r *stationRepository) ListByBounds(ctx context.Context, bounds domain.BoundingBox, limit int) ([]domain.Station, error) {
	if limit <= 0 || limit > LimitMapStations {
		limit = LimitMapStations
	}

	query := `
		SELECT
			uuid, name, country, country_code, state, language, tags,
			votes, bitrate, stream_url, homepage, favicon,
			geo_lat, geo_long, place_name, granularity
		FROM stations
		WHERE geo_lat BETWEEN $1 AND $2
		  AND geo_long BETWEEN $3 AND $4
		  AND NOT (geo_lat = 0 AND geo_long = 0)
		ORDER BY votes DESC
		LIMIT $5
	`

	rows, err := r.db.QueryContext(ctx, query,
		bounds.South, bounds.North, bounds.West, bounds.East, limit)
	if err != nil {
		r.logger.Error("Failed to list stations by bounds", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var stations []domain.Station
	for rows.Next() {
		station, err := r.scanStation(rows)
		if err != nil {
			r.logger.Error("Failed to scan station", zap.Error(err))
			continue
		}
		stations = append(stations, *station)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Rows iteration error", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stations, nil
}

// GetStatistics возвращает агрегированную статистику хранилища
func (r *stationRepository) GetStatistics(ctx context.Context) (*domain.StoreStatistics, error) {
	stats := &domain.StoreStatistics{
		ByGranularity: make(map[string]int),
		LastUpdated:   time.Now(),
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT (geo_lat = 0 AND geo_long = 0))
		FROM stations
	`).Scan(&stats.TotalStations, &stats.Positioned)
	if err != nil {
		r.logger.Error("Failed to get station counts", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT granularity, COUNT(*)
		FROM stations
		WHERE granularity <> ''
		GROUP BY granularity
	`)
	if err != nil {
		r.logger.Error("Failed to get granularity stats", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var granularity string
		var count int
		if err := rows.Scan(&granularity, &count); err != nil {
			r.logger.Error("Failed to scan granularity row", zap.Error(err))
			continue
		}
		stats.ByGranularity[granularity] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	err = r.db.SelectContext(ctx, &stats.TopCountries, `
		SELECT country, COUNT(*) AS count
		FROM stations
		WHERE country <> ''
		GROUP BY country
		ORDER BY count DESC
		LIMIT 10
	`)
	if err != nil {
		r.logger.Error("Failed to get top countries", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *stationRepository) scanStation(row rowScanner) (*domain.Station, error) {
	var s domain.Station
	var tags pq.StringArray
	var granularity string

	err := row.Scan(
		&s.UUID, &s.Name, &s.Country, &s.CountryCode, &s.State, &s.Language,
		&tags,
		&s.Votes, &s.Bitrate, &s.StreamURL, &s.Homepage, &s.Favicon,
		&s.GeoLat, &s.GeoLong, &s.PlaceName, &granularity,
	)
	if err != nil {
		return nil, err
	}

	s.Tags = strings.Join(tags, ",")
	s.Granularity = domain.Granularity(granularity)
	return &s, nil
}
