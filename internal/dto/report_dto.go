package dto

import (
	"time"

	"github.com/alfurqan/tahfiz-api/internal/models"
)

// ReportCreateRequest captures a free-text teacher log entry.
type ReportCreateRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Note     string `json:"note" validate:"required,min=1,max=5000"`
	Category string `json:"category" validate:"omitempty,oneof=general behavior complaint achievement administrative"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// ReportListRequest filters reports by month.
type ReportListRequest struct {
	Year     int
	Month    int
	Category string
}

// ReportResponse serializes a daily report.
type ReportResponse struct {
	ID         uint      `json:"id"`
	Date       string    `json:"date"`
	Note       string    `json:"note"`
	Category   string    `json:"category"`
	ImageURL   string    `json:"image_url,omitempty"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportListResponse wraps report listings.
type ReportListResponse struct {
	Items []ReportResponse `json:"items"`
}

// NewReportResponse converts a report model into a DTO.
func NewReportResponse(report models.DailyReport) ReportResponse {
	return ReportResponse{
		ID:         report.ID,
		Date:       formatDate(report.Date),
		Note:       report.Note,
		Category:   report.Category,
		ImageURL:   report.ImageURL,
		AuthorID:   report.AuthorID,
		AuthorName: report.AuthorName,
		CreatedAt:  report.CreatedAt,
	}
}

// UploadResponse describes a stored upload.
type UploadResponse struct {
	URL       string `json:"url"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}
