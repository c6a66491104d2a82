package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/radiomap-service/internal/pkg/utils"
	"github.com/radiomap-service/internal/usecase"
	"go.uber.org/zap"
)

// StatsHandler - статистика хранилища станций
type StatsHandler struct {
	stationUC *usecase.StationUsecase
	logger    *zap.Logger
}

func NewStatsHandler(stationUC *usecase.StationUsecase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		stationUC: stationUC,
		logger:    logger,
	}
}

// GetStatistics godoc
// @Summary Get station store statistics
// @Description Returns station counts, positioning coverage by granularity and top countries
// @Tags Stats
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.StoreStatistics}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.stationUC.Statistics(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, nil)
}
