package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/service"
	"github.com/alfurqan/tahfiz-api/internal/utils"
)

// SessionHandler exposes the daily session recorder.
type SessionHandler struct {
	service service.SessionService
	logger  zerolog.Logger
}

// NewSessionHandler constructs a session handler.
func NewSessionHandler(service service.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With().Str("component", "session_handler").Logger(),
	}
}

// Register wires session routes. The date path parameter is YYYY-MM-DD.
func (h *SessionHandler) Register(router fiber.Router) {
	router.Get("", h.listMonth)
	router.Put("/:date", h.upsert)
	router.Get("/:date", h.getByDate)
}

func (h *SessionHandler) upsert(c *fiber.Ctx) error {
	var req dto.SessionUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Upsert(c.Context(), c.Params("date"), req, activityActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrHolidayHasRecords):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record session")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record session")
		}
	}

	return utils.SendSuccess(c, "session recorded", result)
}

func (h *SessionHandler) getByDate(c *fiber.Ctx) error {
	result, err := h.service.GetByDate(c.Context(), c.Params("date"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSessionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to get session")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to get session")
		}
	}

	return utils.SendSuccess(c, "session retrieved", result)
}

func (h *SessionHandler) listMonth(c *fiber.Ctx) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.ListMonth(c.Context(), year, month)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list sessions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list sessions")
	}

	return utils.SendSuccess(c, "sessions retrieved", result)
}
