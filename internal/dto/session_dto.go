package dto

import (
	"time"

	"github.com/alfurqan/tahfiz-api/internal/models"
)

// SessionRecordRequest is one student's evaluation inside a session upsert.
type SessionRecordRequest struct {
	StudentID    uint    `json:"student_id" validate:"required"`
	Attendance   string  `json:"attendance" validate:"required,oneof=present absent late makeup not_required"`
	Memorization *string `json:"memorization" validate:"omitempty,oneof=excellent good average poor"`
	Review       *bool   `json:"review"`
	Behavior     *string `json:"behavior" validate:"omitempty,oneof=calm medium undisciplined"`
	Notes        string  `json:"notes" validate:"omitempty,max=2000"`
}

// SessionUpsertRequest replaces the session recorded for one date.
type SessionUpsertRequest struct {
	Type    string                 `json:"type" validate:"required,oneof=basic extra1 extra2 activity holiday"`
	Records []SessionRecordRequest `json:"records" validate:"dive"`
}

// SessionRecordResponse serializes one per-student record.
type SessionRecordResponse struct {
	ID           uint    `json:"id"`
	StudentID    uint    `json:"student_id"`
	Attendance   string  `json:"attendance"`
	Memorization *string `json:"memorization"`
	Review       *bool   `json:"review"`
	Behavior     *string `json:"behavior"`
	Notes        string  `json:"notes"`
}

// SessionResponse serializes a full class session.
type SessionResponse struct {
	ID        uint                    `json:"id"`
	Date      string                  `json:"date"`
	Type      string                  `json:"type"`
	Records   []SessionRecordResponse `json:"records"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// SessionListResponse wraps the sessions of one month.
type SessionListResponse struct {
	Items []SessionResponse `json:"items"`
}

// NewSessionResponse converts a session model into a DTO.
func NewSessionResponse(session models.ClassSession) SessionResponse {
	records := make([]SessionRecordResponse, 0, len(session.Records))
	for _, record := range session.Records {
		records = append(records, SessionRecordResponse{
			ID:           record.ID,
			StudentID:    record.StudentID,
			Attendance:   record.Attendance,
			Memorization: record.Memorization,
			Review:       record.Review,
			Behavior:     record.Behavior,
			Notes:        record.Notes,
		})
	}

	return SessionResponse{
		ID:        session.ID,
		Date:      formatDate(session.Date),
		Type:      session.Type,
		Records:   records,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
