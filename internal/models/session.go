package models

import "time"

// Session types. A holiday session carries no per-student records.
const (
	SessionTypeBasic    = "basic"
	SessionTypeExtra1   = "extra1"
	SessionTypeExtra2   = "extra2"
	SessionTypeActivity = "activity"
	SessionTypeHoliday  = "holiday"
)

// Attendance values per student per session.
const (
	AttendancePresent     = "present"
	AttendanceAbsent      = "absent"
	AttendanceLate        = "late"
	AttendanceMakeup      = "makeup"
	AttendanceNotRequired = "not_required"
)

// Memorization evaluation grades.
const (
	MemorizationExcellent = "excellent"
	MemorizationGood      = "good"
	MemorizationAverage   = "average"
	MemorizationPoor      = "poor"
)

// Behavior evaluation grades.
const (
	BehaviorCalm          = "calm"
	BehaviorMedium        = "medium"
	BehaviorUndisciplined = "undisciplined"
)

// ClassSession is the daily session for the whole class, keyed by date.
type ClassSession struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Date      time.Time       `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Type      string          `gorm:"size:32;not null;default:basic" json:"type"`
	Records   []SessionRecord `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"records"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SessionRecord is one student's evaluation within a session. The nullable
// fields stay null when the student is not required to attend.
type SessionRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionID    uint      `gorm:"index;not null" json:"session_id"`
	StudentID    uint      `gorm:"index;not null" json:"student_id"`
	Attendance   string    `gorm:"size:32;not null" json:"attendance"`
	Memorization *string   `gorm:"size:32" json:"memorization"`
	Review       *bool     `json:"review"`
	Behavior     *string   `gorm:"size:32" json:"behavior"`
	Notes        string    `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidSessionType reports whether the value is a known session type.
func ValidSessionType(value string) bool {
	switch value {
	case SessionTypeBasic, SessionTypeExtra1, SessionTypeExtra2, SessionTypeActivity, SessionTypeHoliday:
		return true
	default:
		return false
	}
}

// ValidAttendance reports whether the value is a known attendance status.
func ValidAttendance(value string) bool {
	switch value {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceMakeup, AttendanceNotRequired:
		return true
	default:
		return false
	}
}
