package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/radiomap-service/internal/domain"
)

// fakeCache - потокобезопасный in-memory CacheRepository для тестов
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return val, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, nil
}

// fakeGeocoder - управляемый GeocoderRepository, считающий внешние
// вызовы
type fakeGeocoder struct {
	available  bool
	candidates []domain.PlaceCandidate
	err        error
	calls      int
}

func (f *fakeGeocoder) Forward(_ context.Context, _, _ string, _ int) ([]domain.PlaceCandidate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func (f *fakeGeocoder) Available() bool {
	return f.available
}

// fakeDirectory - каталог станций с предзаданными страницами
type fakeDirectory struct {
	stations   []domain.Station
	pages      [][]domain.Station
	pageIdx    int
	clicks     []string
	clickErr   error
	searchErr  error
}

func (f *fakeDirectory) Search(_ context.Context, _ domain.StationFilter) ([]domain.Station, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.stations, nil
}

func (f *fakeDirectory) ListWithoutGeo(_ context.Context, _, _ int) ([]domain.Station, error) {
	if f.pageIdx >= len(f.pages) {
		return nil, nil
	}
	page := f.pages[f.pageIdx]
	f.pageIdx++
	return page, nil
}

func (f *fakeDirectory) RegisterClick(_ context.Context, stationUUID string) error {
	f.clicks = append(f.clicks, stationUUID)
	return f.clickErr
}

// fakeStore - хранилище станций, запоминающее upsert-ы
type fakeStore struct {
	mu       sync.Mutex
	upserted map[string]domain.Station
	batches  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{upserted: make(map[string]domain.Station)}
}

func (f *fakeStore) UpsertBatch(_ context.Context, stations []domain.Station) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches++
	for _, s := range stations {
		f.upserted[s.UUID] = s
	}
	return nil
}

func (f *fakeStore) GetByUUID(_ context.Context, uuid string) (*domain.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.upserted[uuid]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStore) ListByBounds(_ context.Context, bounds domain.BoundingBox, _ int) ([]domain.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Station
	for _, s := range f.upserted {
		if bounds.Contains(s.GeoLat, s.GeoLong) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) GetStatistics(_ context.Context) (*domain.StoreStatistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &domain.StoreStatistics{TotalStations: len(f.upserted)}, nil
}
