package dto

import (
	"time"

	"github.com/radiomap-service/internal/domain"
)

// StationsResponse - список станций
type StationsResponse struct {
	Stations []domain.Station `json:"stations"`
	Total    int              `json:"total"`
}

// GeocodeJobResponse - принятый в работу запрос на геокодирование
type GeocodeJobResponse struct {
	JobID       string    `json:"job_id"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

// ImportResponse - итог импорта избранного
type ImportResponse struct {
	Added int `json:"added"`
}
