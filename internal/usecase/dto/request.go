package dto

// SearchStationsRequest - параметры поиска станций в каталоге
type SearchStationsRequest struct {
	Country  string `query:"country" validate:"omitempty,max=100"`
	Tag      string `query:"tag" validate:"omitempty,max=100"`
	Language string `query:"language" validate:"omitempty,max=100"`
	Name     string `query:"name" validate:"omitempty,max=200"`
	MinVotes int    `query:"min_votes" validate:"omitempty,min=0"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=10000"`
	Offset   int    `query:"offset" validate:"omitempty,min=0"`
}

// MapStationsRequest - видимая область карты
type MapStationsRequest struct {
	West  float64 `query:"west" validate:"min=-180,max=180"`
	South float64 `query:"south" validate:"min=-90,max=90"`
	East  float64 `query:"east" validate:"min=-180,max=180"`
	North float64 `query:"north" validate:"min=-90,max=90"`
	Limit int     `query:"limit" validate:"omitempty,min=1,max=5000"`
}

// FavoriteRequest - станция, добавляемая в избранное
type FavoriteRequest struct {
	UUID      string  `json:"stationuuid" validate:"required"`
	Name      string  `json:"name" validate:"required,max=300"`
	Country   string  `json:"country" validate:"omitempty,max=100"`
	Language  string  `json:"language" validate:"omitempty,max=100"`
	Tags      string  `json:"tags" validate:"omitempty,max=500"`
	Votes     int     `json:"votes" validate:"omitempty,min=0"`
	Bitrate   int     `json:"bitrate" validate:"omitempty,min=0"`
	StreamURL string  `json:"url_resolved" validate:"omitempty,url"`
	Homepage  string  `json:"homepage" validate:"omitempty,url"`
	Favicon   string  `json:"favicon" validate:"omitempty,url"`
	GeoLat    float64 `json:"geo_lat" validate:"omitempty,min=-90,max=90"`
	GeoLong   float64 `json:"geo_long" validate:"omitempty,min=-180,max=180"`
}

// RunGeocodingRequest - запрос на запуск батч-геокодирования
type RunGeocodingRequest struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=100000"`
}
