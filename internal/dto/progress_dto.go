package dto

import (
	"time"

	"github.com/alfurqan/tahfiz-api/internal/models"
)

// ProgressUpdateRequest adjusts the verse range, status or notes of the
// student's current surah. The surah itself only changes through the
// confirm/reject decisions.
type ProgressUpdateRequest struct {
	Status    *string `json:"status" validate:"omitempty,oneof=in_progress memorized recited reviewed group_review postponed re_memorize"`
	FromVerse *int    `json:"from_verse" validate:"omitempty,gte=1"`
	ToVerse   *int    `json:"to_verse" validate:"omitempty,gte=1"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

// ProgressStartRequest initializes progress tracking for a student.
type ProgressStartRequest struct {
	SurahID int `json:"surah_id" validate:"required,gte=1,lte=114"`
}

// ProgressResponse serializes a student's surah progress.
type ProgressResponse struct {
	StudentID      uint      `json:"student_id"`
	SurahID        int       `json:"surah_id"`
	SurahName      string    `json:"surah_name"`
	Status         string    `json:"status"`
	FromVerse      int       `json:"from_verse"`
	ToVerse        int       `json:"to_verse"`
	TotalVerses    int       `json:"total_verses"`
	StartDate      string    `json:"start_date"`
	CompletionDate string    `json:"completion_date,omitempty"`
	RetakeCount    int       `json:"retake_count"`
	Notes          string    `json:"notes"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewProgressResponse converts a progress model into a DTO.
func NewProgressResponse(progress models.SurahProgress) ProgressResponse {
	completion := ""
	if progress.CompletionDate != nil {
		completion = formatDate(*progress.CompletionDate)
	}

	return ProgressResponse{
		StudentID:      progress.StudentID,
		SurahID:        progress.SurahID,
		SurahName:      progress.SurahName,
		Status:         progress.Status,
		FromVerse:      progress.FromVerse,
		ToVerse:        progress.ToVerse,
		TotalVerses:    progress.TotalVerses,
		StartDate:      formatDate(progress.StartDate),
		CompletionDate: completion,
		RetakeCount:    progress.RetakeCount,
		Notes:          progress.Notes,
		UpdatedAt:      progress.UpdatedAt,
	}
}
