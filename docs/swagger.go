// Package docs Radio Map Service API.
//
// Сервис карты радиостанций поверх каталога Radio Browser.
// Геокодирует станции без координат по названию и стране,
// раскладывает совпадающие точки по карте и отдаёт их для
// отображения в видимой области.
//
// Основные возможности:
// - Поиск станций в каталоге по стране, тегу, языку и имени
// - Станции внутри видимой области карты
// - Избранное с экспортом и импортом в JSON
// - Асинхронный запуск батч-геокодирования
// - Статистика позиционирования по гранулярности и странам
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
