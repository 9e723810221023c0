package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/models"
	"github.com/alfurqan/tahfiz-api/internal/repository"
)

// ErrSessionNotFound indicates no session was recorded for the date.
var ErrSessionNotFound = errors.New("session not found")

// ErrHolidayHasRecords indicates a holiday session carried per-student records.
var ErrHolidayHasRecords = errors.New("holiday sessions cannot carry student records")

// ErrInvalidDate indicates the date path parameter was malformed.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// RankingInvalidator drops cached leaderboards when their inputs change.
type RankingInvalidator interface {
	Invalidate(ctx context.Context, year int, month time.Month)
}

// SessionService orchestrates daily session recording.
type SessionService interface {
	Upsert(ctx context.Context, date string, req dto.SessionUpsertRequest, actor ActivityActor) (dto.SessionResponse, error)
	GetByDate(ctx context.Context, date string) (dto.SessionResponse, error)
	ListMonth(ctx context.Context, year int, month time.Month) (dto.SessionListResponse, error)
}

type sessionService struct {
	repo        repository.SessionRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	invalidator RankingInvalidator
	logger      zerolog.Logger
}

// NewSessionService constructs the session service.
func NewSessionService(repo repository.SessionRepository, validate *validator.Validate, activity ActivityRecorder, invalidator RankingInvalidator, logger zerolog.Logger) SessionService {
	return &sessionService{
		repo:        repo,
		validator:   validate,
		activity:    activity,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "session_service").Logger(),
	}
}

func (s *sessionService) Upsert(ctx context.Context, date string, req dto.SessionUpsertRequest, actor ActivityActor) (dto.SessionResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.SessionResponse{}, err
	}

	if req.Type == models.SessionTypeHoliday && len(req.Records) > 0 {
		return dto.SessionResponse{}, ErrHolidayHasRecords
	}

	records := make([]models.SessionRecord, 0, len(req.Records))
	for _, record := range req.Records {
		records = append(records, normalizeRecord(record))
	}

	session := models.ClassSession{
		Date:    day,
		Type:    req.Type,
		Records: records,
	}

	if err := s.repo.Upsert(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, day.Year(), day.Month())
	}

	if s.activity != nil {
		id := session.ID
		s.activity.Record(ctx, ActivityEntry{
			Actor:      actor,
			Action:     "session.recorded",
			EntityType: "session",
			EntityID:   &id,
			Metadata: map[string]interface{}{
				"date":    date,
				"type":    req.Type,
				"records": len(records),
			},
		})
	}

	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) GetByDate(ctx context.Context, date string) (dto.SessionResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	session, err := s.repo.GetByDate(ctx, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) ListMonth(ctx context.Context, year int, month time.Month) (dto.SessionListResponse, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	sessions, err := s.repo.ListBetween(ctx, start, start.AddDate(0, 1, 0))
	if err != nil {
		return dto.SessionListResponse{}, err
	}

	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, dto.NewSessionResponse(session))
	}

	return dto.SessionListResponse{Items: items}, nil
}

// normalizeRecord blanks the evaluable fields for students not required to
// attend, whatever the payload carried.
func normalizeRecord(req dto.SessionRecordRequest) models.SessionRecord {
	record := models.SessionRecord{
		StudentID:    req.StudentID,
		Attendance:   req.Attendance,
		Memorization: req.Memorization,
		Review:       req.Review,
		Behavior:     req.Behavior,
		Notes:        req.Notes,
	}

	if record.Attendance == models.AttendanceNotRequired {
		record.Memorization = nil
		record.Review = nil
		record.Behavior = nil
	}

	return record
}

func parseDate(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day.UTC(), nil
}
