package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"github.com/radiomap-service/internal/pkg/errors"
	"github.com/radiomap-service/internal/pkg/utils"
	"github.com/radiomap-service/internal/pkg/validator"
	"github.com/radiomap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// GeocodingHandler ставит задачи батч-геокодирования в Redis Stream;
// сами задачи выполняет воркер
type GeocodingHandler struct {
	streams repository.StreamRepository
	logger  *zap.Logger
}

func NewGeocodingHandler(streams repository.StreamRepository, logger *zap.Logger) *GeocodingHandler {
	return &GeocodingHandler{
		streams: streams,
		logger:  logger,
	}
}

// Run godoc
// @Summary Запуск батч-геокодирования
// @Description Публикует задачу в очередь; обработка асинхронная, ответ содержит идентификатор задачи
// @Tags Geocoding
// @Accept json
// @Produce json
// @Param request body dto.RunGeocodingRequest false "Параметры запуска"
// @Success 202 {object} utils.SuccessResponse{data=dto.GeocodeJobResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/geocoding/run [post]
func (h *GeocodingHandler) Run(c *fiber.Ctx) error {
	var req dto.RunGeocodingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
		}
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}

	event := domain.GeocodeJobEvent{
		JobID:       uuid.New(),
		Limit:       req.Limit,
		RequestedAt: time.Now().UTC(),
	}
	if err := h.streams.PublishToStream(c.Context(), domain.StreamGeocodeJobs, event); err != nil {
		h.logger.Error("Failed to enqueue geocoding job", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	h.logger.Info("Geocoding job enqueued",
		zap.String("job_id", event.JobID.String()),
		zap.Int("limit", event.Limit))

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, dto.GeocodeJobResponse{
		JobID:       event.JobID.String(),
		Status:      "queued",
		RequestedAt: event.RequestedAt,
	}, nil)
}
