package domain

import "time"

// FavoritesExportVersion - версия схемы файла экспорта избранного
const FavoritesExportVersion = "1.0"

// FavoritesExport - файл экспорта/импорта избранных станций
type FavoritesExport struct {
	Stations   []Station `json:"stations"`
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}
