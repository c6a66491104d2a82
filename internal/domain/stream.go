package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamGeocodeJobs = "stream:geocoding:jobs"
	StreamGeocodeDone = "stream:geocoding:done"
)

// GeocodeJobEvent - запрос на запуск батч-геокодирования
type GeocodeJobEvent struct {
	JobID       uuid.UUID `json:"job_id"`
	Limit       int       `json:"limit,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// GeocodeDoneEvent - результат прогона батч-геокодирования
type GeocodeDoneEvent struct {
	JobID    uuid.UUID        `json:"job_id"`
	Report   GeocodeRunReport `json:"report"`
	Duration float64          `json:"duration_seconds"`
	Error    string           `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
