package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"github.com/radiomap-service/internal/pkg/errors"
	"github.com/radiomap-service/internal/repository/postgres/testhelpers"
)

// StationRepositorySuite tests the station repository with a real database
type StationRepositorySuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.StationStoreRepository
	ctx    context.Context
}

func (s *StationRepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewStationRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *StationRepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *StationRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.NoError(s.testDB.Cleanup(s.ctx))
}

func (s *StationRepositorySuite) seedStations() []domain.Station {
	stations := []domain.Station{
		{
			UUID:        "uuid-paris",
			Name:        "Radio Paris",
			Country:     "France",
			Tags:        "jazz, news",
			Votes:       120,
			GeoLat:      48.8566,
			GeoLong:     2.3522,
			PlaceName:   "Paris, France",
			Granularity: domain.GranularityCity,
		},
		{
			UUID:        "uuid-berlin",
			Name:        "Berlin FM",
			Country:     "Germany",
			Votes:       80,
			GeoLat:      52.52,
			GeoLong:     13.405,
			Granularity: domain.GranularityCity,
		},
		{
			UUID:    "uuid-nogeo",
			Name:    "Somewhere AM",
			Country: "France",
			Votes:   5,
		},
	}
	s.NoError(s.repo.UpsertBatch(s.ctx, stations))
	return stations
}

func (s *StationRepositorySuite) TestUpsertBatch_InsertAndGet() {
	s.seedStations()

	station, err := s.repo.GetByUUID(s.ctx, "uuid-paris")
	s.NoError(err)
	s.Require().NotNil(station)
	s.Equal("Radio Paris", station.Name)
	s.Equal(48.8566, station.GeoLat)
	s.Equal(domain.GranularityCity, station.Granularity)
	s.Equal([]string{"jazz", "news"}, station.TagList())
}

func (s *StationRepositorySuite) TestUpsertBatch_ReplacesExisting() {
	s.seedStations()

	updated := domain.Station{
		UUID:        "uuid-paris",
		Name:        "Radio Paris",
		Country:     "France",
		Votes:       150,
		GeoLat:      48.9,
		GeoLong:     2.4,
		PlaceName:   "Paris, Île-de-France, France",
		Granularity: domain.GranularityRegion,
	}
	s.NoError(s.repo.UpsertBatch(s.ctx, []domain.Station{updated}))

	station, err := s.repo.GetByUUID(s.ctx, "uuid-paris")
	s.NoError(err)
	s.Equal(150, station.Votes)
	s.Equal(48.9, station.GeoLat)
	s.Equal(domain.GranularityRegion, station.Granularity)
}

func (s *StationRepositorySuite) TestGetByUUID_NotFound() {
	_, err := s.repo.GetByUUID(s.ctx, "uuid-missing")
	s.ErrorIs(err, errors.ErrStationNotFound)
}

func (s *StationRepositorySuite) TestListByBounds() {
	s.seedStations()

	// Europe-wide box contains both positioned stations
	stations, err := s.repo.ListByBounds(s.ctx, domain.BoundingBox{
		West: -10, South: 35, East: 30, North: 60,
	}, 0)
	s.NoError(err)
	s.Len(stations, 2)
	// Ordered by votes descending
	s.Equal("uuid-paris", stations[0].UUID)

	// Tight box around Berlin
	stations, err = s.repo.ListByBounds(s.ctx, domain.BoundingBox{
		West: 13, South: 52, East: 14, North: 53,
	}, 0)
	s.NoError(err)
	s.Len(stations, 1)
	s.Equal("Berlin FM", stations[0].Name)
}

func (s *StationRepositorySuite) TestListByBounds_ExcludesUnpositioned() {
	s.seedStations()

	// A box containing (0, 0) must not return stations awaiting geocoding
	stations, err := s.repo.ListByBounds(s.ctx, domain.BoundingBox{
		West: -1, South: -1, East: 1, North: 1,
	}, 0)
	s.NoError(err)
	s.Empty(stations)
}

func (s *StationRepositorySuite) TestGetStatistics() {
	s.seedStations()

	stats, err := s.repo.GetStatistics(s.ctx)
	s.NoError(err)
	s.Require().NotNil(stats)
	s.Equal(3, stats.TotalStations)
	s.Equal(2, stats.Positioned)
	s.Equal(2, stats.ByGranularity[string(domain.GranularityCity)])
	s.Require().NotEmpty(stats.TopCountries)
	s.Equal("France", stats.TopCountries[0].Country)
	s.Equal(2, stats.TopCountries[0].Count)
}

func TestStationRepositorySuite(t *testing.T) {
	suite.Run(t, new(StationRepositorySuite))
}
