package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFavorites() (*FavoritesUsecase, *fakeCache) {
	storage := newFakeCache()
	return NewFavoritesUsecase(storage, zap.NewNop()), storage
}

func TestFavoritesUsecase_AddAndList(t *testing.T) {
	uc, _ := newTestFavorites()
	ctx := context.Background()

	require.NoError(t, uc.Add(ctx, domain.Station{UUID: "uuid-1", Name: "Radio One"}))
	require.NoError(t, uc.Add(ctx, domain.Station{UUID: "uuid-2", Name: "Radio Two"}))

	stations, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stations, 2)
}

func TestFavoritesUsecase_AddDuplicateSkipped(t *testing.T) {
	uc, _ := newTestFavorites()
	ctx := context.Background()

	require.NoError(t, uc.Add(ctx, domain.Station{UUID: "uuid-1", Name: "Radio One"}))
	require.NoError(t, uc.Add(ctx, domain.Station{UUID: "uuid-1", Name: "Renamed"}))

	stations, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "Radio One", stations[0].Name, "the first version wins")
}

func TestFavoritesUsecase_AddWithoutUUID(t *testing.T) {
	uc, _ := newTestFavorites()

	err := uc.Add(context.Background(), domain.Station{Name: "No ID"})
	assert.ErrorIs(t, err, errors.ErrInvalidStationUUID)
}

func TestFavoritesUsecase_Remove(t *testing.T) {
	uc, _ := newTestFavorites()
	ctx := context.Background()

	require.NoError(t, uc.Add(ctx, domain.Station{UUID: "uuid-1"}))
	require.NoError(t, uc.Remove(ctx, "uuid-1"))

	stations, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stations)

	assert.ErrorIs(t, uc.Remove(ctx, "uuid-1"), errors.ErrStationNotFound)
}

func TestFavoritesUsecase_ExportImportRoundTrip(t *testing.T) {
	uc, _ := newTestFavorites()
	ctx := context.Background()

	require.NoError(t, uc.Add(ctx, domain.Station{UUID: "uuid-1", Name: "Radio One"}))
	require.NoError(t, uc.Add(ctx, domain.Station{UUID: "uuid-2", Name: "Radio Two"}))

	export, err := uc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.FavoritesExportVersion, export.Version)
	assert.False(t, export.ExportDate.IsZero())

	data, err := json.Marshal(export)
	require.NoError(t, err)

	// A fresh collection re-imports the same uuid set
	fresh, _ := newTestFavorites()
	added, err := fresh.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	stations, err := fresh.List(ctx)
	require.NoError(t, err)

	uuids := map[string]bool{}
	for _, s := range stations {
		uuids[s.UUID] = true
	}
	assert.Equal(t, map[string]bool{"uuid-1": true, "uuid-2": true}, uuids)

	// Re-importing into the same collection skips every duplicate
	added, err = fresh.Import(ctx, data)
	require.NoError(t, err)
	assert.Zero(t, added)

	stations, err = fresh.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stations, 2)
}

func TestFavoritesUsecase_ImportMalformed(t *testing.T) {
	uc, _ := newTestFavorites()

	_, err := uc.Import(context.Background(), []byte("{not json"))
	assert.ErrorIs(t, err, errors.ErrInvalidImportFile)

	stations, listErr := uc.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, stations, "a failed import must not corrupt the collection")
}

func TestFavoritesUsecase_MalformedBlobTreatedAsEmpty(t *testing.T) {
	uc, storage := newTestFavorites()
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "favorites:stations", []byte("][broken"), 0))

	stations, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stations)

	// The collection remains writable after recovering from the bad blob
	require.NoError(t, uc.Add(ctx, domain.Station{UUID: "uuid-1"}))
	stations, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stations, 1)
}
