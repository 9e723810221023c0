package models

import "time"

// Surah progress statuses.
const (
	ProgressStatusInProgress  = "in_progress"
	ProgressStatusMemorized   = "memorized"
	ProgressStatusRecited     = "recited"
	ProgressStatusReviewed    = "reviewed"
	ProgressStatusGroupReview = "group_review"
	ProgressStatusPostponed   = "postponed"
	ProgressStatusReMemorize  = "re_memorize"
)

// SurahProgress tracks the surah a student is currently memorizing. One row
// per student.
type SurahProgress struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StudentID      uint       `gorm:"uniqueIndex;not null" json:"student_id"`
	SurahID        int        `gorm:"not null" json:"surah_id"`
	SurahName      string     `gorm:"size:64;not null" json:"surah_name"`
	Status         string     `gorm:"size:32;not null;default:in_progress" json:"status"`
	FromVerse      int        `gorm:"not null;default:1" json:"from_verse"`
	ToVerse        int        `gorm:"not null;default:1" json:"to_verse"`
	TotalVerses    int        `gorm:"not null" json:"total_verses"`
	StartDate      time.Time  `gorm:"type:date" json:"start_date"`
	CompletionDate *time.Time `gorm:"type:date" json:"completion_date"`
	RetakeCount    int        `gorm:"not null;default:0" json:"retake_count"`
	Notes          string     `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ValidProgressStatus reports whether the value is a known progress status.
func ValidProgressStatus(value string) bool {
	switch value {
	case ProgressStatusInProgress, ProgressStatusMemorized, ProgressStatusRecited,
		ProgressStatusReviewed, ProgressStatusGroupReview, ProgressStatusPostponed,
		ProgressStatusReMemorize:
		return true
	default:
		return false
	}
}
