package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/models"
	"github.com/alfurqan/tahfiz-api/internal/repository"
	"github.com/alfurqan/tahfiz-api/pkg/quran"
)

// ErrProgressNotFound indicates the student has no tracked progress yet.
var ErrProgressNotFound = errors.New("progress not found")

// ErrVerseOutOfRange indicates a verse range beyond the surah's length.
var ErrVerseOutOfRange = errors.New("verse range exceeds surah length")

// ErrUnknownSurah indicates a surah id outside 1..114.
var ErrUnknownSurah = errors.New("unknown surah")

// ProgressService tracks each student's surah memorization.
type ProgressService interface {
	Get(ctx context.Context, studentID uint) (dto.ProgressResponse, error)
	Start(ctx context.Context, studentID uint, req dto.ProgressStartRequest, actor ActivityActor) (dto.ProgressResponse, error)
	Update(ctx context.Context, studentID uint, req dto.ProgressUpdateRequest, actor ActivityActor) (dto.ProgressResponse, error)
	ConfirmMastery(ctx context.Context, studentID uint, actor ActivityActor) (dto.ProgressResponse, error)
	RejectMastery(ctx context.Context, studentID uint, actor ActivityActor) (dto.ProgressResponse, error)
}

type progressService struct {
	repo      repository.ProgressRepository
	students  repository.StudentRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewProgressService constructs the progress service.
func NewProgressService(repo repository.ProgressRepository, students repository.StudentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ProgressService {
	return &progressService{
		repo:      repo,
		students:  students,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "progress_service").Logger(),
		now:       time.Now,
	}
}

func (s *progressService) Get(ctx context.Context, studentID uint) (dto.ProgressResponse, error) {
	progress, err := s.load(ctx, studentID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	return dto.NewProgressResponse(progress), nil
}

// Start begins tracking a student on the given surah. It is the only way to
// pick a surah outright; afterwards the surah changes only through the
// confirm/reject decisions.
func (s *progressService) Start(ctx context.Context, studentID uint, req dto.ProgressStartRequest, actor ActivityActor) (dto.ProgressResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ProgressResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrStudentNotFound
		}
		return dto.ProgressResponse{}, err
	}

	surah, ok := quran.ByID(req.SurahID)
	if !ok {
		return dto.ProgressResponse{}, ErrUnknownSurah
	}

	progress, err := s.repo.GetByStudentID(ctx, studentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProgressResponse{}, err
	}

	progress.StudentID = studentID
	progress.SurahID = surah.ID
	progress.SurahName = surah.Name
	progress.Status = models.ProgressStatusInProgress
	progress.FromVerse = 1
	progress.ToVerse = 1
	progress.TotalVerses = surah.Verses
	progress.StartDate = s.now().UTC().Truncate(24 * time.Hour)
	progress.CompletionDate = nil
	progress.RetakeCount = 0

	if err := s.repo.Save(ctx, &progress); err != nil {
		return dto.ProgressResponse{}, err
	}

	s.record(ctx, actor, "progress.started", studentID, map[string]interface{}{
		"surah_id":   surah.ID,
		"surah_name": surah.Name,
	})

	return dto.NewProgressResponse(progress), nil
}

func (s *progressService) Update(ctx context.Context, studentID uint, req dto.ProgressUpdateRequest, actor ActivityActor) (dto.ProgressResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ProgressResponse{}, err
	}

	progress, err := s.load(ctx, studentID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	if req.FromVerse != nil {
		progress.FromVerse = *req.FromVerse
	}
	if req.ToVerse != nil {
		progress.ToVerse = *req.ToVerse
	}
	if req.Status != nil {
		progress.Status = *req.Status
	}
	if req.Notes != nil {
		progress.Notes = strings.TrimSpace(*req.Notes)
	}

	if progress.ToVerse > progress.TotalVerses || progress.FromVerse > progress.ToVerse {
		return dto.ProgressResponse{}, ErrVerseOutOfRange
	}

	if err := s.repo.Save(ctx, &progress); err != nil {
		return dto.ProgressResponse{}, err
	}

	s.record(ctx, actor, "progress.updated", studentID, map[string]interface{}{
		"surah_id":   progress.SurahID,
		"from_verse": progress.FromVerse,
		"to_verse":   progress.ToVerse,
	})

	return dto.NewProgressResponse(progress), nil
}

// ConfirmMastery completes the current surah and advances to the next one
// with a fresh verse range and retake count. The last surah completes in
// place instead.
func (s *progressService) ConfirmMastery(ctx context.Context, studentID uint, actor ActivityActor) (dto.ProgressResponse, error) {
	progress, err := s.load(ctx, studentID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	completedID := progress.SurahID
	today := s.now().UTC().Truncate(24 * time.Hour)

	if next, ok := quran.ByID(progress.SurahID + 1); ok {
		progress.SurahID = next.ID
		progress.SurahName = next.Name
		progress.TotalVerses = next.Verses
		progress.Status = models.ProgressStatusInProgress
		progress.FromVerse = 1
		progress.ToVerse = 1
		progress.StartDate = today
		progress.CompletionDate = nil
	} else {
		progress.Status = models.ProgressStatusMemorized
		progress.CompletionDate = &today
	}
	progress.RetakeCount = 0

	if err := s.repo.Save(ctx, &progress); err != nil {
		return dto.ProgressResponse{}, err
	}

	if student, err := s.students.GetByID(ctx, studentID); err == nil {
		count := student.MemorizedSurahs + 1
		if count > quran.Count {
			count = quran.Count
		}
		if _, err := s.students.Update(ctx, studentID, map[string]interface{}{"memorized_surahs": count}); err != nil {
			s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to bump memorized surah count")
		}
	}

	s.record(ctx, actor, "progress.mastery_confirmed", studentID, map[string]interface{}{
		"completed_surah_id": completedID,
		"next_surah_id":      progress.SurahID,
	})

	return dto.NewProgressResponse(progress), nil
}

// RejectMastery sends the student back over the same surah. The verse range
// and surah never change here, only the retake count and status.
func (s *progressService) RejectMastery(ctx context.Context, studentID uint, actor ActivityActor) (dto.ProgressResponse, error) {
	progress, err := s.load(ctx, studentID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	progress.RetakeCount++
	progress.Status = models.ProgressStatusReMemorize

	if err := s.repo.Save(ctx, &progress); err != nil {
		return dto.ProgressResponse{}, err
	}

	s.record(ctx, actor, "progress.mastery_rejected", studentID, map[string]interface{}{
		"surah_id":     progress.SurahID,
		"retake_count": progress.RetakeCount,
	})

	return dto.NewProgressResponse(progress), nil
}

func (s *progressService) load(ctx context.Context, studentID uint) (models.SurahProgress, error) {
	progress, err := s.repo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SurahProgress{}, ErrProgressNotFound
		}
		return models.SurahProgress{}, err
	}
	return progress, nil
}

func (s *progressService) record(ctx context.Context, actor ActivityActor, action string, studentID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	id := studentID
	s.activity.Record(ctx, ActivityEntry{
		Actor:      actor,
		Action:     action,
		EntityType: "progress",
		EntityID:   &id,
		Metadata:   metadata,
	})
}
