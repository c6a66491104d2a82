package usecase

import (
	"regexp"
	"strings"

	"github.com/radiomap-service/internal/domain"
)

// LocationCandidate - строка-кандидат на географическое название,
// извлечённая из имени станции
type LocationCandidate struct {
	Location string
	Type     domain.QueryType
	Weight   int
}

// ExtractionResult - упорядоченный список кандидатов и суммарный
// приоритет. Порядок появления задаёт порядок опроса геокодера:
// первый успешно геокодированный кандидат побеждает.
type ExtractionResult struct {
	Candidates []LocationCandidate
	Score      int
}

// Веса кандидатов по происхождению
const (
	weightExtracted = 3
	weightKeyword   = 2
	weightToken     = 1
	weightCountry   = 0
)

// Ключевые слова нескольких языков для распознавания шаблонов
// "<слово> city" / "city <слово>" и аналогичных
var (
	cityKeywords = []string{
		"city", "град", "город", "ciudad", "ville", "stadt", "città", "cidade",
		"市", "都市", "शहर", "مدينة", "πόλη", "miasto", "város",
	}

	villageKeywords = []string{
		"village", "село", "деревня", "поселение", "поселок", "aldea", "pueblo",
		"villaggio", "dorf", "村", "गांव", "قرية", "χωριό", "wieś", "falu",
	}

	radioKeywords = []string{
		"radio", "fm", "am", "радио", "station", "станция", "rádio", "راديو",
		"ραδιόφωνο", "ラジオ", "रेडियो", "radiostacja", "rádió", "emisora",
	}

	// Слова, которые заведомо не являются географическими названиями
	// (бренды, жанры, эпитеты)
	nonGeographicWords = map[string]struct{}{}

	nonGeographicList = []string{
		// Russian
		"пирамида", "радио", "плюс", "европа", "русское", "авто", "хит", "шансон",
		"ретро", "классик", "музыка", "новости", "спорт", "энергия", "максимум",
		"люкс", "элит", "лайт", "голд", "джаз", "блюз", "рок", "поп", "дача",
		"юмор", "смех", "юность", "дорожное", "такси", "бизнес", "эхо", "голос",
		"волна", "звезда", "комета", "планета", "орбита", "космос", "мир",
		// English
		"pyramid", "plus", "europe", "auto", "hit", "retro", "classic", "music",
		"news", "sport", "energy", "maximum", "luxury", "elite", "light", "gold",
		"jazz", "blues", "rock", "pop", "humor", "laugh", "youth", "business",
		"echo", "voice", "wave", "star", "comet", "planet", "orbit", "space",
		"world", "super", "mega", "ultra", "power", "force", "magic", "diamond",
		"crystal", "rainbow", "sunshine", "moonlight", "fire", "ice", "storm",
		// Common brand words
		"first", "best", "top", "new", "old", "big", "small", "hot", "cool",
		"fresh", "live", "online", "digital", "network", "central", "main",
	}

	stopWords = map[string]struct{}{
		"the": {}, "and": {}, "or": {}, "of": {}, "in": {}, "on": {}, "at": {},
		"to": {}, "for": {}, "с": {}, "и": {}, "на": {}, "в": {}, "по": {},
	}

	adjectiveWords = map[string]struct{}{
		"new": {}, "old": {}, "big": {}, "hot": {}, "top": {},
		"первый": {}, "новый": {}, "старый": {},
	}
)

func init() {
	for _, w := range nonGeographicList {
		nonGeographicWords[w] = struct{}{}
	}
}

// Шаблоны, удаляемые из имени перед токенизацией
var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d+[.,]?\d*\s*(fm|am|mhz|khz)\b`),
	regexp.MustCompile(`(?i)\b(radio|fm|am|station|станция|радио)\b`),
	regexp.MustCompile(`(?i)\b(the|la|le|el|der|die|das)\b`),
	regexp.MustCompile(`(?i)\b(music|rock|pop|jazz|news|sport)\b`),
	regexp.MustCompile(`(?i)\b(live|online|stream|digital)\b`),
	regexp.MustCompile(`[^\p{L}\p{N}\s\-()\[\]]+`),
}

var (
	bracketPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(([^)]+)\)`),
		regexp.MustCompile(`\[([^\]]+)\]`),
		regexp.MustCompile(`\{([^}]+)\}`),
	}

	whitespaceRe = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`^[\p{L}]+$`)
	digitsRe     = regexp.MustCompile(`^\d+$`)

	// Суффиксы, характерные для топонимов
	placeSuffixes = []string{"ово", "ино", "ск", "град", "бург", "town", "burg", "ville"}

	cyrillicVowelRe = regexp.MustCompile(`[аеиоуыэюя].*[аеиоуыэюя]`)
	latinVowelRe    = regexp.MustCompile(`[aeiou].*[aeiou]`)
)

// LocationExtractor выделяет кандидатов на географическое название
// из имени радиостанции
type LocationExtractor struct{}

func NewLocationExtractor() *LocationExtractor {
	return &LocationExtractor{}
}

// Extract возвращает кандидатов в порядке убывания приоритета:
// скобки, паттерны с ключевыми словами, регион станции, свободные
// токены, страна как последний резерв. Кандидаты не дедуплицируются,
// кроме финальной проверки страны.
func (e *LocationExtractor) Extract(station domain.Station) ExtractionResult {
	var result ExtractionResult

	add := func(location string, queryType domain.QueryType, weight int) {
		result.Candidates = append(result.Candidates, LocationCandidate{
			Location: location,
			Type:     queryType,
			Weight:   weight,
		})
		result.Score += weight
	}

	// 1. Содержимое скобок - самый сильный сигнал
	for _, loc := range e.extractFromBrackets(station.Name) {
		add(loc, domain.QueryTypeExtracted, weightExtracted)
	}

	// 2. Паттерны вида "<слово> city" / "село <слово>"
	for _, kc := range e.extractWithKeywords(station.Name) {
		add(kc.word, kc.queryType, weightKeyword)
	}

	// 3. Регион станции из каталога
	if len(station.State) > 2 {
		add(station.State, domain.QueryTypeRegion, weightKeyword)
	}

	// 4. Оставшиеся токены имени, упорядоченные по правдоподобию
	for _, place := range e.extractPotentialPlaces(station.Name) {
		add(place, domain.QueryTypePotential, weightToken)
	}

	// 5. Страна - последний резерв, если её ещё нет среди кандидатов
	if station.Country != "" {
		country := domain.NormalizeCountry(station.Country)
		present := false
		for _, c := range result.Candidates {
			if strings.EqualFold(c.Location, country) {
				present = true
				break
			}
		}
		if !present {
			add(country, domain.QueryTypeCountry, weightCountry)
		}
	}

	return result
}

func (e *LocationExtractor) extractFromBrackets(name string) []string {
	var locations []string
	for _, pattern := range bracketPatterns {
		for _, match := range pattern.FindAllStringSubmatch(name, -1) {
			location := strings.TrimSpace(match[1])
			if len([]rune(location)) > 2 && !containsRadioKeyword(location) {
				locations = append(locations, location)
			}
		}
	}
	return locations
}

type keywordCandidate struct {
	word      string
	queryType domain.QueryType
}

func (e *LocationExtractor) extractWithKeywords(name string) []keywordCandidate {
	var candidates []keywordCandidate
	lower := strings.ToLower(name)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == '.' || r == '_'
	})

	check := func(word string, queryType domain.QueryType) {
		if len([]rune(word)) <= 2 {
			return
		}
		if _, blacklisted := nonGeographicWords[word]; blacklisted {
			return
		}
		if containsRadioKeyword(word) {
			return
		}
		candidates = append(candidates, keywordCandidate{word: word, queryType: queryType})
	}

	match := func(keywords []string, queryType domain.QueryType) {
		for i, word := range words {
			for _, keyword := range keywords {
				if word != keyword {
					continue
				}
				// Слово непосредственно перед ключевым словом...
				if i > 0 {
					check(words[i-1], queryType)
				}
				// ...и сразу после него
				if i+1 < len(words) {
					check(words[i+1], queryType)
				}
			}
		}
	}

	match(cityKeywords, domain.QueryTypeCity)
	match(villageKeywords, domain.QueryTypeVillage)

	return candidates
}

// extractPotentialPlaces токенизирует очищенное имя и оставляет токены
// с положительной оценкой правдоподобия, лучшие первыми
func (e *LocationExtractor) extractPotentialPlaces(name string) []string {
	cleaned := e.cleanName(name)

	type scored struct {
		word  string
		score int
	}
	var places []scored

	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 2 || digitsRe.MatchString(word) {
			continue
		}
		if containsRadioKeyword(word) || !wordRe.MatchString(word) {
			continue
		}
		if _, blacklisted := nonGeographicWords[word]; blacklisted {
			continue
		}
		if score := scorePlaceLikelihood(word); score > 0 {
			places = append(places, scored{word: word, score: score})
		}
	}

	// Стабильная сортировка по убыванию оценки сохраняет порядок
	// появления для равных оценок
	for i := 1; i < len(places); i++ {
		for j := i; j > 0 && places[j].score > places[j-1].score; j-- {
			places[j], places[j-1] = places[j-1], places[j]
		}
	}

	result := make([]string, len(places))
	for i, p := range places {
		result[i] = p.word
	}
	return result
}

func (e *LocationExtractor) cleanName(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	for _, pattern := range ignorePatterns {
		cleaned = pattern.ReplaceAllString(cleaned, " ")
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
}

// scorePlaceLikelihood оценивает, насколько токен похож на топоним
func scorePlaceLikelihood(word string) int {
	score := 10
	lower := strings.ToLower(word)

	if len([]rune(word)) >= 6 {
		score += 3
	}
	if cyrillicVowelRe.MatchString(lower) {
		score += 2
	}
	if latinVowelRe.MatchString(lower) {
		score += 2
	}
	for _, suffix := range placeSuffixes {
		if strings.HasSuffix(lower, suffix) {
			score += 5
			break
		}
	}

	if _, stop := stopWords[lower]; stop {
		score -= 10
	}
	if len([]rune(word)) == 3 {
		score -= 2
	}
	if _, adj := adjectiveWords[lower]; adj {
		score -= 5
	}

	return score
}

func containsRadioKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range radioKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
