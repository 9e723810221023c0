package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/alfurqan/tahfiz-api/internal/service"
	"github.com/alfurqan/tahfiz-api/internal/utils"
)

// EvaluationHandler exposes the monthly group performance verdict.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs an evaluation handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires evaluation routes.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Get("", h.getMonthly)
}

func (h *EvaluationHandler) getMonthly(c *fiber.Ctx) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.GetMonthly(c.Context(), year, month)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to evaluate group")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate group")
	}

	return utils.SendSuccess(c, "evaluation retrieved", result)
}
