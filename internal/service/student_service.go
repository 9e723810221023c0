package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/models"
	"github.com/alfurqan/tahfiz-api/internal/repository"
)

// ErrStudentNotFound indicates the student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// ErrReasonRequired indicates a status transition needs an action reason.
var ErrReasonRequired = errors.New("action reason required for this status")

// StudentService orchestrates roster management use cases.
type StudentService interface {
	Create(ctx context.Context, req dto.StudentCreateRequest, actor ActivityActor) (dto.StudentResponse, error)
	List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, req dto.StudentUpdateRequest, actor ActivityActor) (dto.StudentResponse, error)
	ChangeStatus(ctx context.Context, id uint, req dto.StudentStatusRequest, actor ActivityActor) (dto.StudentResponse, error)
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "student_service").Logger(),
		now:       time.Now,
	}
}

func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest, actor ActivityActor) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	birthDate, _ := time.Parse("2006-01-02", req.BirthDate)
	registration := s.now().UTC().Truncate(24 * time.Hour)
	if req.RegistrationDate != "" {
		registration, _ = time.Parse("2006-01-02", req.RegistrationDate)
	}

	student := models.Student{
		FullName:         strings.TrimSpace(req.FullName),
		GuardianName:     strings.TrimSpace(req.GuardianName),
		Phone1:           strings.TrimSpace(req.Phone1),
		Phone2:           strings.TrimSpace(req.Phone2),
		BirthDate:        birthDate,
		RegistrationDate: registration,
		Status:           models.StudentStatusActive,
		MemorizedSurahs:  req.MemorizedSurahs,
		DailyAmount:      req.DailyAmount,
		Notes:            strings.TrimSpace(req.Notes),
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	if s.activity != nil {
		id := student.ID
		s.activity.Record(ctx, ActivityEntry{
			Actor:      actor,
			Action:     "student.created",
			EntityType: "student",
			EntityID:   &id,
			Metadata:   map[string]interface{}{"full_name": student.FullName},
		})
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error) {
	students, total, err := s.repo.List(ctx, repository.StudentFilter{
		Search:          strings.TrimSpace(req.Search),
		Status:          strings.TrimSpace(req.Status),
		Page:            req.Page,
		PageSize:        req.PageSize,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		return dto.StudentListResponse{}, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.StudentListResponse{Items: items, Pagination: pagination}, nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id uint, req dto.StudentUpdateRequest, actor ActivityActor) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	updates := make(map[string]interface{})
	changedFields := make([]string, 0)

	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
		changedFields = append(changedFields, "full_name")
	}
	if req.GuardianName != nil {
		updates["guardian_name"] = strings.TrimSpace(*req.GuardianName)
		changedFields = append(changedFields, "guardian_name")
	}
	if req.Phone1 != nil {
		updates["phone1"] = strings.TrimSpace(*req.Phone1)
		changedFields = append(changedFields, "phone1")
	}
	if req.Phone2 != nil {
		updates["phone2"] = strings.TrimSpace(*req.Phone2)
		changedFields = append(changedFields, "phone2")
	}
	if req.BirthDate != nil {
		birthDate, _ := time.Parse("2006-01-02", *req.BirthDate)
		updates["birth_date"] = birthDate
		changedFields = append(changedFields, "birth_date")
	}
	if req.MemorizedSurahs != nil {
		updates["memorized_surahs"] = *req.MemorizedSurahs
		changedFields = append(changedFields, "memorized_surahs")
	}
	if req.DailyAmount != nil {
		updates["daily_amount"] = *req.DailyAmount
		changedFields = append(changedFields, "daily_amount")
	}
	if req.Notes != nil {
		updates["notes"] = strings.TrimSpace(*req.Notes)
		changedFields = append(changedFields, "notes")
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	student, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			Actor:      actor,
			Action:     "student.updated",
			EntityType: "student",
			EntityID:   &id,
			Metadata:   map[string]interface{}{"fields": changedFields},
		})
	}

	return dto.NewStudentResponse(student), nil
}

// ChangeStatus transitions a student's lifecycle status. There is no hard
// delete: "deleted" is a status like any other and keeps history intact.
func (s *studentService) ChangeStatus(ctx context.Context, id uint, req dto.StudentStatusRequest, actor ActivityActor) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	reason := strings.TrimSpace(req.Reason)
	if (req.Status == models.StudentStatusExpelled || req.Status == models.StudentStatusDeleted) && reason == "" {
		return dto.StudentResponse{}, ErrReasonRequired
	}

	updates := map[string]interface{}{"status": req.Status}
	if reason != "" {
		updates["action_reason"] = reason
	}

	student, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	if s.activity != nil {
		metadata := map[string]interface{}{"status": req.Status}
		if reason != "" {
			metadata["reason"] = reason
		}
		s.activity.Record(ctx, ActivityEntry{
			Actor:      actor,
			Action:     "student.status_changed",
			EntityType: "student",
			EntityID:   &id,
			Metadata:   metadata,
		})
	}

	return dto.NewStudentResponse(student), nil
}
