package domain

import "strings"

// countryAliases нормализует распространённые синонимы названий стран,
// включая кириллические написания
var countryAliases = map[string]string{
	"usa":           "united states",
	"us":            "united states",
	"america":       "united states",
	"uk":            "united kingdom",
	"great britain": "united kingdom",
	"england":       "united kingdom",
	"uae":           "united arab emirates",
	"russia":        "russian federation",
	"россия":        "russian federation",
	"украина":       "ukraine",
	"беларусь":      "belarus",
	"казахстан":     "kazakhstan",
	"deutschland":   "germany",
	"españa":        "spain",
	"brasil":        "brazil",
	"holland":       "netherlands",
	"türkiye":       "turkey",
	"méxico":        "mexico",
	"italia":        "italy",
}

// NormalizeCountry приводит название страны к каноническому виду
func NormalizeCountry(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := countryAliases[lower]; ok {
		return canonical
	}
	return lower
}

// countryFallback - центроид страны и её ограничивающий прямоугольник.
// Используется, когда живой геокодер недоступен (нет токена).
type countryFallback struct {
	Lat  float64
	Lon  float64
	BBox BoundingBox
}

// countryFallbacks - статическая таблица центроидов стран, ключ -
// каноническое название в нижнем регистре
var countryFallbacks = map[string]countryFallback{
	"united states":        {39.8283, -98.5795, BoundingBox{-125.0, 24.5, -66.9, 49.4}},
	"united kingdom":       {55.3781, -3.4360, BoundingBox{-8.6, 49.9, 1.8, 60.9}},
	"germany":              {51.1657, 10.4515, BoundingBox{5.9, 47.3, 15.0, 55.1}},
	"france":               {46.2276, 2.2137, BoundingBox{-5.1, 41.3, 9.6, 51.1}},
	"spain":                {40.4637, -3.7492, BoundingBox{-9.3, 36.0, 3.3, 43.8}},
	"italy":                {41.8719, 12.5674, BoundingBox{6.6, 36.6, 18.5, 47.1}},
	"portugal":             {39.3999, -8.2245, BoundingBox{-9.5, 37.0, -6.2, 42.2}},
	"netherlands":          {52.1326, 5.2913, BoundingBox{3.4, 50.8, 7.2, 53.5}},
	"belgium":              {50.5039, 4.4699, BoundingBox{2.5, 49.5, 6.4, 51.5}},
	"switzerland":          {46.8182, 8.2275, BoundingBox{6.0, 45.8, 10.5, 47.8}},
	"austria":              {47.5162, 14.5501, BoundingBox{9.5, 46.4, 17.2, 49.0}},
	"poland":               {51.9194, 19.1451, BoundingBox{14.1, 49.0, 24.2, 54.8}},
	"czech republic":       {49.8175, 15.4730, BoundingBox{12.1, 48.6, 18.9, 51.1}},
	"romania":              {45.9432, 24.9668, BoundingBox{20.2, 43.6, 29.7, 48.3}},
	"greece":               {39.0742, 21.8243, BoundingBox{19.4, 34.8, 28.2, 41.7}},
	"turkey":               {38.9637, 35.2433, BoundingBox{26.0, 36.0, 44.8, 42.1}},
	"sweden":               {60.1282, 18.6435, BoundingBox{11.1, 55.3, 24.2, 69.1}},
	"norway":               {60.4720, 8.4689, BoundingBox{4.6, 58.0, 31.1, 71.2}},
	"denmark":              {56.2639, 9.5018, BoundingBox{8.1, 54.6, 12.7, 57.8}},
	"finland":              {61.9241, 25.7482, BoundingBox{20.6, 59.8, 31.6, 70.1}},
	"russian federation":   {61.5240, 105.3188, BoundingBox{19.6, 41.2, 180.0, 81.9}},
	"ukraine":              {48.3794, 31.1656, BoundingBox{22.1, 44.4, 40.2, 52.4}},
	"belarus":              {53.7098, 27.9534, BoundingBox{23.2, 51.3, 32.8, 56.2}},
	"kazakhstan":           {48.0196, 66.9237, BoundingBox{46.5, 40.6, 87.3, 55.4}},
	"united arab emirates": {23.4241, 53.8478, BoundingBox{51.5, 22.6, 56.4, 26.1}},
	"india":                {20.5937, 78.9629, BoundingBox{68.2, 8.1, 97.4, 35.5}},
	"china":                {35.8617, 104.1954, BoundingBox{73.5, 18.2, 134.8, 53.6}},
	"japan":                {36.2048, 138.2529, BoundingBox{129.4, 31.0, 145.8, 45.5}},
	"australia":            {-25.2744, 133.7751, BoundingBox{112.9, -43.6, 153.6, -10.7}},
	"brazil":               {-14.2350, -51.9253, BoundingBox{-73.9, -33.8, -34.8, 5.3}},
	"argentina":            {-38.4161, -63.6167, BoundingBox{-73.6, -55.1, -53.6, -21.8}},
	"mexico":               {23.6345, -102.5528, BoundingBox{-117.1, 14.5, -86.7, 32.7}},
	"canada":               {56.1304, -106.3468, BoundingBox{-141.0, 41.7, -52.6, 83.1}},
}

// CountryFallback ищет страну в статической таблице центроидов.
// Принимает как название страны, так и извлечённую локацию (на случай
// когда в названии станции упомянута сама страна).
func CountryFallback(name string) (*GeoResult, bool) {
	fb, ok := countryFallbacks[NormalizeCountry(name)]
	if !ok {
		return nil, false
	}

	bbox := fb.BBox
	return &GeoResult{
		Latitude:    fb.Lat,
		Longitude:   fb.Lon,
		PlaceName:   NormalizeCountry(name),
		BBox:        &bbox,
		Granularity: GranularityCountry,
		Confidence:  ConfidenceLow,
		Method:      "fallback",
	}, true
}

// CountryVariations возвращает варианты написания страны для сверки
// с последним компонентом place_name из ответа геокодера
func CountryVariations(country string) []string {
	canonical := NormalizeCountry(country)
	if vars, ok := countryVariations[canonical]; ok {
		return vars
	}
	return []string{canonical}
}

var countryVariations = map[string][]string{
	"russian federation":   {"russia", "russian federation", "россия"},
	"united states":        {"united states", "usa", "america", "us"},
	"united kingdom":       {"united kingdom", "uk", "great britain", "britain", "england"},
	"germany":              {"germany", "deutschland"},
	"spain":                {"spain", "españa"},
	"italy":                {"italy", "italia"},
	"brazil":               {"brazil", "brasil"},
	"mexico":               {"mexico", "méxico"},
	"netherlands":          {"netherlands", "holland"},
	"turkey":               {"turkey", "türkiye"},
	"sweden":               {"sweden", "sverige"},
	"norway":               {"norway", "norge"},
	"denmark":              {"denmark", "danmark"},
	"finland":              {"finland", "suomi"},
	"poland":               {"poland", "polska"},
	"greece":               {"greece", "ελλάδα"},
	"ukraine":              {"ukraine", "украина"},
	"belarus":              {"belarus", "беларусь"},
	"kazakhstan":           {"kazakhstan", "казахстан"},
	"united arab emirates": {"united arab emirates", "uae"},
}
