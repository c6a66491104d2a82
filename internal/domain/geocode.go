package domain

import (
	"fmt"
	"strings"
	"time"
)

// Granularity - классификация географической точности результата
// геокодирования
type Granularity string

const (
	GranularityCountry Granularity = "country"
	GranularityRegion  Granularity = "region"
	GranularityCity    Granularity = "city"
	GranularityVillage Granularity = "village"
)

// Confidence - уверенность геокодера в результате
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// QueryType - подсказка геокодеру о типе искомого места
type QueryType string

const (
	QueryTypeCity      QueryType = "city"
	QueryTypeVillage   QueryType = "village"
	QueryTypeRegion    QueryType = "region"
	QueryTypeCountry   QueryType = "country"
	QueryTypePotential QueryType = "potential"
	QueryTypePlace     QueryType = "place"
	QueryTypeExtracted QueryType = "extracted"
)

// MapboxTypes возвращает фильтр place-типов Mapbox для подсказки
func (q QueryType) MapboxTypes() string {
	switch q {
	case QueryTypeCity:
		return "place,locality"
	case QueryTypeVillage:
		return "locality,neighborhood,place"
	case QueryTypeRegion:
		return "region,place"
	case QueryTypeCountry:
		return "country"
	case QueryTypePotential:
		return "place,locality,region"
	default:
		return "place,locality,region,country"
	}
}

// BoundingBox - прямоугольник (запад, юг, восток, север), внутри
// которого лежит геокодированное место
type BoundingBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Contains проверяет, лежит ли точка внутри прямоугольника
func (b *BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.South && lat <= b.North && lon >= b.West && lon <= b.East
}

// GeoResult - результат геокодирования одной строки-кандидата
type GeoResult struct {
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	PlaceName   string       `json:"place_name"`
	BBox        *BoundingBox `json:"bbox,omitempty"`
	Granularity Granularity  `json:"granularity"`
	Confidence  Confidence   `json:"confidence"`
	Method      string       `json:"method"`
}

// GeocodeCacheEntry - запись кеша геокодирования с отметкой времени.
// Записи старше TTL не используются независимо от частоты обращений.
type GeocodeCacheEntry struct {
	Result    GeoResult `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// Expired проверяет, истёк ли срок жизни записи
func (e *GeocodeCacheEntry) Expired(ttl time.Duration) bool {
	return time.Since(e.Timestamp) > ttl
}

// GeocodeCacheKey строит ключ кеша из (локация, страна, тип запроса)
func GeocodeCacheKey(location, country string, queryType QueryType) string {
	c := strings.ToLower(strings.TrimSpace(country))
	if c == "" {
		c = "global"
	}
	return fmt.Sprintf("%s|%s|%s", strings.ToLower(strings.TrimSpace(location)), c, queryType)
}

// PlaceCandidate - один кандидат из ответа геокодера до валидации
type PlaceCandidate struct {
	Latitude   float64
	Longitude  float64
	PlaceName  string
	PlaceTypes []string
	BBox       *BoundingBox
}

// Granularity выводит гранулярность из place-типа Mapbox:
// country / locality -> village / place -> city / иначе region
func (p *PlaceCandidate) Granularity() Granularity {
	if len(p.PlaceTypes) == 0 {
		return GranularityRegion
	}
	switch p.PlaceTypes[0] {
	case "country":
		return GranularityCountry
	case "locality", "neighborhood":
		return GranularityVillage
	case "place":
		return GranularityCity
	default:
		return GranularityRegion
	}
}

// Coordinate - географическая точка
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeocodeRunReport - итог одного прогона батч-пайплайна
type GeocodeRunReport struct {
	Processed int `json:"processed"`
	Geocoded  int `json:"geocoded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	APICalls  int `json:"api_calls"`
}
