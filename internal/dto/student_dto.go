package dto

import (
	"time"

	"github.com/alfurqan/tahfiz-api/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// StudentCreateRequest captures the payload for registering a student.
type StudentCreateRequest struct {
	FullName         string `json:"full_name" validate:"required,min=2,max=255"`
	GuardianName     string `json:"guardian_name" validate:"omitempty,max=255"`
	Phone1           string `json:"phone1" validate:"required,min=6,max=32"`
	Phone2           string `json:"phone2" validate:"omitempty,max=32"`
	BirthDate        string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	RegistrationDate string `json:"registration_date" validate:"omitempty,datetime=2006-01-02"`
	MemorizedSurahs  int    `json:"memorized_surahs" validate:"gte=0,lte=114"`
	DailyAmount      string `json:"daily_amount" validate:"omitempty,oneof=quarter_page half_page one_page two_pages"`
	Notes            string `json:"notes" validate:"omitempty,max=2000"`
}

// StudentUpdateRequest captures partial update payloads for students.
type StudentUpdateRequest struct {
	FullName        *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	GuardianName    *string `json:"guardian_name" validate:"omitempty,max=255"`
	Phone1          *string `json:"phone1" validate:"omitempty,min=6,max=32"`
	Phone2          *string `json:"phone2" validate:"omitempty,max=32"`
	BirthDate       *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	MemorizedSurahs *int    `json:"memorized_surahs" validate:"omitempty,gte=0,lte=114"`
	DailyAmount     *string `json:"daily_amount" validate:"omitempty,oneof=quarter_page half_page one_page two_pages"`
	Notes           *string `json:"notes" validate:"omitempty,max=2000"`
}

// StudentStatusRequest captures a lifecycle status transition.
type StudentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active long_absent expelled deleted"`
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

// StudentListRequest defines filters for listing students.
type StudentListRequest struct {
	Page            int
	PageSize        int
	Search          string
	Status          string
	IncludeInactive bool
}

// StudentResponse serializes student data.
type StudentResponse struct {
	ID               uint      `json:"id"`
	FullName         string    `json:"full_name"`
	GuardianName     string    `json:"guardian_name"`
	Phone1           string    `json:"phone1"`
	Phone2           string    `json:"phone2"`
	BirthDate        string    `json:"birth_date"`
	RegistrationDate string    `json:"registration_date"`
	Status           string    `json:"status"`
	MemorizedSurahs  int       `json:"memorized_surahs"`
	DailyAmount      string    `json:"daily_amount"`
	Notes            string    `json:"notes"`
	ActionReason     string    `json:"action_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StudentListResponse wraps a paginated student response.
type StudentListResponse struct {
	Items      []StudentResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewStudentResponse converts a student model into a DTO.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:               student.ID,
		FullName:         student.FullName,
		GuardianName:     student.GuardianName,
		Phone1:           student.Phone1,
		Phone2:           student.Phone2,
		BirthDate:        formatDate(student.BirthDate),
		RegistrationDate: formatDate(student.RegistrationDate),
		Status:           student.Status,
		MemorizedSurahs:  student.MemorizedSurahs,
		DailyAmount:      student.DailyAmount,
		Notes:            student.Notes,
		ActionReason:     student.ActionReason,
		CreatedAt:        student.CreatedAt,
		UpdatedAt:        student.UpdatedAt,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
