package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/pkg/errors"
	"github.com/radiomap-service/internal/pkg/utils"
	"github.com/radiomap-service/internal/pkg/validator"
	"github.com/radiomap-service/internal/usecase"
	"github.com/radiomap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// StationHandler - обработчик запросов к станциям
type StationHandler struct {
	stationUC *usecase.StationUsecase
	logger    *zap.Logger
}

func NewStationHandler(stationUC *usecase.StationUsecase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stationUC: stationUC,
		logger:    logger,
	}
}

// Search godoc
// @Summary Поиск радиостанций в каталоге
// @Description Ищет станции в каталоге Radio Browser по стране, тегу, языку и подстроке имени с пагинацией
// @Tags Stations
// @Accept json
// @Produce json
// @Param country query string false "Страна"
// @Param tag query string false "Тег (жанр)"
// @Param language query string false "Язык вещания"
// @Param name query string false "Подстрока имени"
// @Param min_votes query int false "Минимальное число голосов"
// @Param limit query int false "Максимум результатов" default(100)
// @Param offset query int false "Смещение пагинации" default(0)
// @Success 200 {object} utils.SuccessResponse{data=dto.StationsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/stations [get]
func (h *StationHandler) Search(c *fiber.Ctx) error {
	req := dto.SearchStationsRequest{
		Country:  c.Query("country"),
		Tag:      c.Query("tag"),
		Language: c.Query("language"),
		Name:     c.Query("name"),
		MinVotes: c.QueryInt("min_votes", 0),
		Limit:    c.QueryInt("limit", 100),
		Offset:   c.QueryInt("offset", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}

	stations, err := h.stationUC.Search(c.Context(), domain.StationFilter{
		Country:  req.Country,
		Tag:      req.Tag,
		Language: req.Language,
		Name:     req.Name,
		MinVotes: req.MinVotes,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.StationsResponse{
		Stations: stations,
		Total:    len(stations),
	}, &utils.Meta{
		Total: len(stations),
		Limit: req.Limit,
	})
}

// Map godoc
// @Summary Станции внутри видимой области карты
// @Description Возвращает позиционированные станции из хранилища внутри прямоугольника (west, south, east, north)
// @Tags Stations
// @Accept json
// @Produce json
// @Param west query number true "Западная граница"
// @Param south query number true "Южная граница"
// @Param east query number true "Восточная граница"
// @Param north query number true "Северная граница"
// @Param limit query int false "Максимум результатов" default(1000)
// @Success 200 {object} utils.SuccessResponse{data=dto.StationsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations/map [get]
func (h *StationHandler) Map(c *fiber.Ctx) error {
	req := dto.MapStationsRequest{
		West:  c.QueryFloat("west"),
		South: c.QueryFloat("south"),
		East:  c.QueryFloat("east"),
		North: c.QueryFloat("north"),
		Limit: c.QueryInt("limit", 1000),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}

	stations, err := h.stationUC.MapStations(c.Context(), domain.BoundingBox{
		West:  req.West,
		South: req.South,
		East:  req.East,
		North: req.North,
	}, req.Limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.StationsResponse{
		Stations: stations,
		Total:    len(stations),
	}, nil)
}

// Get godoc
// @Summary Станция по UUID
// @Tags Stations
// @Produce json
// @Param uuid path string true "UUID станции"
// @Success 200 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{uuid} [get]
func (h *StationHandler) Get(c *fiber.Ctx) error {
	station, err := h.stationUC.GetByUUID(c.Context(), c.Params("uuid"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, station, nil)
}

// Play godoc
// @Summary Регистрация прослушивания станции
// @Description Отправляет click в каталог Radio Browser как отцепленную задачу; ответ не ждёт результата
// @Tags Stations
// @Produce json
// @Param uuid path string true "UUID станции"
// @Success 202 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations/{uuid}/play [post]
func (h *StationHandler) Play(c *fiber.Ctx) error {
	stationUUID := c.Params("uuid")
	if stationUUID == "" {
		return utils.SendError(c, errors.ErrInvalidStationUUID)
	}

	h.stationUC.RegisterPlay(stationUUID)

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, fiber.Map{"status": "accepted"}, nil)
}
