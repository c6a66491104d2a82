package domain

// GeocodedStation - запись из файла массового геокодирования
// (результат офлайн-прогона пайплайна). Схема совпадает с выходным
// JSON батч-геокодера.
type GeocodedStation struct {
	UUID              string     `json:"uuid"`
	Name              string     `json:"name"`
	Country           string     `json:"country"`
	State             string     `json:"state,omitempty"`
	ExtractedLocation string     `json:"extracted_location"`
	LocationType      string     `json:"location_type"`
	Priority          int        `json:"priority"`
	Latitude          float64    `json:"latitude"`
	Longitude         float64    `json:"longitude"`
	PlaceName         string     `json:"place_name"`
	PlaceType         string     `json:"mapbox_place_type,omitempty"`
	Confidence        Confidence `json:"confidence"`
	Method            string     `json:"method,omitempty"`
	Timestamp         float64    `json:"timestamp,omitempty"`
}

// Granularity выводит гранулярность записи из типа локации и
// уверенности: country остаётся country; village и neighborhood
// схлопываются в village; иначе high -> city, medium -> region,
// low -> country.
func (g *GeocodedStation) Granularity() Granularity {
	switch g.LocationType {
	case "country":
		return GranularityCountry
	case "village", "neighborhood":
		return GranularityVillage
	}

	switch g.Confidence {
	case ConfidenceHigh:
		return GranularityCity
	case ConfidenceMedium:
		return GranularityRegion
	default:
		return GranularityCountry
	}
}

// DeduplicateGeocoded убирает дубликаты по UUID, оставляя запись с
// более поздней отметкой времени (last-write wins)
func DeduplicateGeocoded(records []GeocodedStation) []GeocodedStation {
	byUUID := make(map[string]int, len(records))
	result := make([]GeocodedStation, 0, len(records))

	for _, rec := range records {
		if rec.UUID == "" {
			continue
		}
		if idx, ok := byUUID[rec.UUID]; ok {
			if rec.Timestamp > result[idx].Timestamp {
				result[idx] = rec
			}
			continue
		}
		byUUID[rec.UUID] = len(result)
		result = append(result, rec)
	}

	return result
}
