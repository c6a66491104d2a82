package domain

import "strings"

// Station - радиостанция из каталога Radio Browser.
// Координаты и происхождение (PlaceName, Granularity) заполняются
// пайплайном геокодирования; записи никогда не мутируются на месте,
// только заменяются производной копией (см. WithPosition).
type Station struct {
	UUID        string      `json:"stationuuid" db:"uuid"`
	Name        string      `json:"name" db:"name"`
	Country     string      `json:"country" db:"country"`
	CountryCode string      `json:"countrycode,omitempty" db:"country_code"`
	State       string      `json:"state,omitempty" db:"state"`
	Language    string      `json:"language,omitempty" db:"language"`
	Tags        string      `json:"tags,omitempty" db:"tags"`
	Votes       int         `json:"votes" db:"votes"`
	Bitrate     int         `json:"bitrate" db:"bitrate"`
	StreamURL   string      `json:"url_resolved,omitempty" db:"stream_url"`
	Homepage    string      `json:"homepage,omitempty" db:"homepage"`
	Favicon     string      `json:"favicon,omitempty" db:"favicon"`
	GeoLat      float64     `json:"geo_lat" db:"geo_lat"`
	GeoLong     float64     `json:"geo_long" db:"geo_long"`
	PlaceName   string      `json:"place_name,omitempty" db:"place_name"`
	Granularity Granularity `json:"granularity,omitempty" db:"granularity"`
}

// NeedsGeocoding проверяет, нужно ли станции геокодирование.
// Пара (0, 0) считается отсутствующими координатами, а не точкой
// на пересечении экватора и нулевого меридиана.
func (s *Station) NeedsGeocoding() bool {
	return s.GeoLat == 0 && s.GeoLong == 0
}

// TagList возвращает список тегов (в каталоге теги хранятся одной
// строкой через запятую)
func (s *Station) TagList() []string {
	if s.Tags == "" {
		return nil
	}
	parts := strings.Split(s.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// WithPosition возвращает копию станции с назначенными координатами
// и данными о происхождении позиции
func (s Station) WithPosition(lat, lon float64, placeName string, granularity Granularity) Station {
	s.GeoLat = lat
	s.GeoLong = lon
	s.PlaceName = placeName
	s.Granularity = granularity
	return s
}

// StationFilter - параметры фильтрации каталога станций
type StationFilter struct {
	Country  string
	Tag      string
	Language string
	Name     string
	MinVotes int
	Limit    int
	Offset   int
}
