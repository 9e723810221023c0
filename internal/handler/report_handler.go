package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/service"
	"github.com/alfurqan/tahfiz-api/internal/utils"
)

// ReportHandler exposes the daily report log.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs a report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.listMonth)
	router.Delete("/:id", h.delete)
}

func (h *ReportHandler) create(c *fiber.Ctx) error {
	var req dto.ReportCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.Context(), req, activityActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrEmptyNote), errors.Is(err, service.ErrInvalidDate):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create report")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create report")
		}
	}

	return utils.SendCreated(c, "report created", result)
}

func (h *ReportHandler) listMonth(c *fiber.Ctx) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.ListMonth(c.Context(), dto.ReportListRequest{
		Year:     year,
		Month:    int(month),
		Category: strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list reports")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list reports")
	}

	return utils.SendSuccess(c, "reports retrieved", result)
}

func (h *ReportHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid report id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete report")
	}

	return utils.SendSuccess(c, "report deleted", fiber.Map{"id": id})
}
