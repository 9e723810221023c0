package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/service"
	"github.com/alfurqan/tahfiz-api/internal/utils"
)

// ProgressHandler exposes the surah progress tracker.
type ProgressHandler struct {
	service service.ProgressService
	logger  zerolog.Logger
}

// NewProgressHandler constructs a progress handler.
func NewProgressHandler(service service.ProgressService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register wires progress routes under the student id.
func (h *ProgressHandler) Register(router fiber.Router) {
	router.Get("/:studentId/progress", h.get)
	router.Put("/:studentId/progress", h.update)
	router.Post("/:studentId/progress/start", h.start)
	router.Post("/:studentId/progress/confirm", h.confirm)
	router.Post("/:studentId/progress/reject", h.reject)
}

func (h *ProgressHandler) get(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	result, err := h.service.Get(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to get progress")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get progress")
	}

	return utils.SendSuccess(c, "progress retrieved", result)
}

func (h *ProgressHandler) start(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var req dto.ProgressStartRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Start(c.Context(), studentID, req, activityActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrUnknownSurah):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to start progress")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to start progress")
		}
	}

	return utils.SendCreated(c, "progress started", result)
}

func (h *ProgressHandler) update(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var req dto.ProgressUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.Context(), studentID, req, activityActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrVerseOutOfRange):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProgressNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update progress")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update progress")
		}
	}

	return utils.SendSuccess(c, "progress updated", result)
}

func (h *ProgressHandler) confirm(c *fiber.Ctx) error {
	return h.decide(c, h.service.ConfirmMastery, "mastery confirmed", "failed to confirm mastery")
}

func (h *ProgressHandler) reject(c *fiber.Ctx) error {
	return h.decide(c, h.service.RejectMastery, "mastery rejected", "failed to reject mastery")
}

func (h *ProgressHandler) decide(c *fiber.Ctx, decision func(context.Context, uint, service.ActivityActor) (dto.ProgressResponse, error), success, failure string) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	result, err := decision(c.Context(), studentID, activityActorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg(failure)
		return utils.SendError(c, fiber.StatusInternalServerError, failure)
	}

	return utils.SendSuccess(c, success, result)
}
