package domain

import "time"

// StoreStatistics - агрегированная статистика хранилища станций
type StoreStatistics struct {
	TotalStations  int            `json:"total_stations"`
	Positioned     int            `json:"positioned"`
	ByGranularity  map[string]int `json:"by_granularity"`
	TopCountries   []CountryCount `json:"top_countries"`
	LastUpdated    time.Time      `json:"last_updated"`
}

// CountryCount - количество станций в стране
type CountryCount struct {
	Country string `json:"country" db:"country"`
	Count   int    `json:"count" db:"count"`
}
