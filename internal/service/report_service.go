package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/models"
	"github.com/alfurqan/tahfiz-api/internal/repository"
)

// ErrReportNotFound indicates the report does not exist.
var ErrReportNotFound = errors.New("report not found")

// ErrEmptyNote indicates the note was empty after sanitization.
var ErrEmptyNote = errors.New("report note must not be empty")

// ReportService manages the teacher's free-text daily log.
type ReportService interface {
	Create(ctx context.Context, req dto.ReportCreateRequest, actor ActivityActor) (dto.ReportResponse, error)
	ListMonth(ctx context.Context, req dto.ReportListRequest) (dto.ReportListResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type reportService struct {
	repo      repository.ReportRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewReportService constructs the report service.
func NewReportService(repo repository.ReportRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ReportService {
	return &reportService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		activity:  activity,
		logger:    logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) Create(ctx context.Context, req dto.ReportCreateRequest, actor ActivityActor) (dto.ReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ReportResponse{}, err
	}

	note := strings.TrimSpace(s.sanitizer.Sanitize(req.Note))
	if note == "" {
		return dto.ReportResponse{}, ErrEmptyNote
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	category := req.Category
	if category == "" {
		category = models.ReportCategoryGeneral
	}

	report := models.DailyReport{
		Date:       date,
		Note:       note,
		Category:   category,
		ImageURL:   strings.TrimSpace(req.ImageURL),
		AuthorID:   actor.Email,
		AuthorName: actor.Name,
	}

	if err := s.repo.Create(ctx, &report); err != nil {
		return dto.ReportResponse{}, err
	}

	if s.activity != nil {
		id := report.ID
		s.activity.Record(ctx, ActivityEntry{
			Actor:      actor,
			Action:     "report.created",
			EntityType: "report",
			EntityID:   &id,
			Metadata:   map[string]interface{}{"category": category, "date": req.Date},
		})
	}

	return dto.NewReportResponse(report), nil
}

func (s *reportService) ListMonth(ctx context.Context, req dto.ReportListRequest) (dto.ReportListResponse, error) {
	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	reports, err := s.repo.ListBetween(ctx, start, start.AddDate(0, 1, 0), req.Category)
	if err != nil {
		return dto.ReportListResponse{}, err
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		items = append(items, dto.NewReportResponse(report))
	}

	return dto.ReportListResponse{Items: items}, nil
}

func (s *reportService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return err
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			Actor:      actor,
			Action:     "report.deleted",
			EntityType: "report",
			EntityID:   &id,
		})
	}

	return nil
}
