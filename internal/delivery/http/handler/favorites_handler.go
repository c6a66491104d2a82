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

// FavoritesHandler - обработчик коллекции избранных станций
type FavoritesHandler struct {
	favoritesUC *usecase.FavoritesUsecase
	logger      *zap.Logger
}

func NewFavoritesHandler(favoritesUC *usecase.FavoritesUsecase, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesUC: favoritesUC,
		logger:      logger,
	}
}

// List godoc
// @Summary Список избранных станций
// @Tags Favorites
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StationsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/favorites [get]
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	stations, err := h.favoritesUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.StationsResponse{
		Stations: stations,
		Total:    len(stations),
	}, nil)
}

// Add godoc
// @Summary Добавление станции в избранное
// @Description Повторное добавление станции с тем же UUID не является ошибкой: сохраняется первая версия
// @Tags Favorites
// @Accept json
// @Produce json
// @Param station body dto.FavoriteRequest true "Станция"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/favorites [post]
func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}

	station := domain.Station{
		UUID:      req.UUID,
		Name:      req.Name,
		Country:   req.Country,
		Language:  req.Language,
		Tags:      req.Tags,
		Votes:     req.Votes,
		Bitrate:   req.Bitrate,
		StreamURL: req.StreamURL,
		Homepage:  req.Homepage,
		Favicon:   req.Favicon,
		GeoLat:    req.GeoLat,
		GeoLong:   req.GeoLong,
	}
	if err := h.favoritesUC.Add(c.Context(), station); err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, fiber.Map{"stationuuid": req.UUID}, nil)
}

// Remove godoc
// @Summary Удаление станции из избранного
// @Tags Favorites
// @Produce json
// @Param uuid path string true "UUID станции"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/favorites/{uuid} [delete]
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	if err := h.favoritesUC.Remove(c.Context(), c.Params("uuid")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"status": "removed"}, nil)
}

// Export godoc
// @Summary Экспорт избранного в JSON
// @Description Возвращает переносимый снимок коллекции с датой экспорта и версией формата
// @Tags Favorites
// @Produce json
// @Success 200 {object} domain.FavoritesExport
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/favorites/export [get]
func (h *FavoritesHandler) Export(c *fiber.Ctx) error {
	export, err := h.favoritesUC.Export(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="favorites.json"`)
	return c.JSON(export)
}

// Import godoc
// @Summary Импорт избранного из JSON
// @Description Принимает файл экспорта; станции с уже известными UUID пропускаются
// @Tags Favorites
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ImportResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/favorites/import [post]
func (h *FavoritesHandler) Import(c *fiber.Ctx) error {
	added, err := h.favoritesUC.Import(c.Context(), c.Body())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.ImportResponse{Added: added}, nil)
}
