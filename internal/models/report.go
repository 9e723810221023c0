package models

import "time"

// Daily report categories.
const (
	ReportCategoryGeneral        = "general"
	ReportCategoryBehavior       = "behavior"
	ReportCategoryComplaint      = "complaint"
	ReportCategoryAchievement    = "achievement"
	ReportCategoryAdministrative = "administrative"
)

// DailyReport is a free-text teacher log entry, independent of sessions.
type DailyReport struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Date       time.Time `gorm:"type:date;index;not null" json:"date"`
	Note       string    `gorm:"type:text;not null" json:"note"`
	Category   string    `gorm:"size:32;not null;default:general;index" json:"category"`
	ImageURL   string    `gorm:"size:512" json:"image_url"`
	AuthorID   string    `gorm:"size:255;not null" json:"author_id"`
	AuthorName string    `gorm:"size:255" json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidReportCategory reports whether the value is a known category.
func ValidReportCategory(value string) bool {
	switch value {
	case ReportCategoryGeneral, ReportCategoryBehavior, ReportCategoryComplaint,
		ReportCategoryAchievement, ReportCategoryAdministrative:
		return true
	default:
		return false
	}
}
