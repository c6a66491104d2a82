package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/radiomap-service/internal/domain/repository"
	"github.com/radiomap-service/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewStationRepositoryForTest creates a station repository over a raw
// sqlx connection for use in integration tests
func NewStationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StationStoreRepository {
	return postgres.NewStationRepository(postgres.NewDBForTest(db, logger))
}
