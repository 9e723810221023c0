package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/alfurqan/tahfiz-api/internal/service"
	"github.com/alfurqan/tahfiz-api/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves downloadable spreadsheet artifacts.
type ExportHandler struct {
	service service.ExportService
	logger  zerolog.Logger
}

// NewExportHandler constructs an export handler.
func NewExportHandler(service service.ExportService, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With().Str("component", "export_handler").Logger(),
	}
}

// Register wires export routes.
func (h *ExportHandler) Register(router fiber.Router) {
	router.Get("/ranking", h.monthlyRanking)
	router.Get("/students/:studentId/progress", h.studentProgress)
}

func (h *ExportHandler) monthlyRanking(c *fiber.Ctx) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	artifact, err := h.service.MonthlyRanking(c.Context(), year, month)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to export ranking")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to export ranking")
	}

	return sendArtifact(c, artifact)
}

func (h *ExportHandler) studentProgress(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	artifact, err := h.service.StudentProgress(c.Context(), studentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrProgressNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to export progress")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to export progress")
		}
	}

	return sendArtifact(c, artifact)
}

func sendArtifact(c *fiber.Ctx, artifact service.ExportArtifact) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	return c.Send(artifact.Content)
}
