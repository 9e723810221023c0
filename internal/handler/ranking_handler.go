package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/alfurqan/tahfiz-api/internal/service"
	"github.com/alfurqan/tahfiz-api/internal/utils"
)

// RankingHandler exposes the monthly leaderboard.
type RankingHandler struct {
	service service.RankingService
	logger  zerolog.Logger
}

// NewRankingHandler constructs a ranking handler.
func NewRankingHandler(service service.RankingService, logger zerolog.Logger) *RankingHandler {
	return &RankingHandler{
		service: service,
		logger:  logger.With().Str("component", "ranking_handler").Logger(),
	}
}

// Register wires ranking routes.
func (h *RankingHandler) Register(router fiber.Router) {
	router.Get("", h.getMonthly)
}

func (h *RankingHandler) getMonthly(c *fiber.Ctx) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.GetMonthly(c.Context(), year, month)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute ranking")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute ranking")
	}

	return utils.SendSuccess(c, "ranking retrieved", result)
}
