package models

import "time"

// Student lifecycle statuses. Expelled and deleted students stay in the
// table but drop out of every active-roster view.
const (
	StudentStatusActive     = "active"
	StudentStatusLongAbsent = "long_absent"
	StudentStatusExpelled   = "expelled"
	StudentStatusDeleted    = "deleted"
)

// Daily memorization amounts assignable to a student.
const (
	DailyAmountQuarterPage = "quarter_page"
	DailyAmountHalfPage    = "half_page"
	DailyAmountOnePage     = "one_page"
	DailyAmountTwoPages    = "two_pages"
)

// Student represents one pupil of the memorization class.
type Student struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	FullName         string    `gorm:"size:255;not null" json:"full_name"`
	GuardianName     string    `gorm:"size:255" json:"guardian_name"`
	Phone1           string    `gorm:"size:32;not null" json:"phone1"`
	Phone2           string    `gorm:"size:32" json:"phone2"`
	BirthDate        time.Time `gorm:"type:date" json:"birth_date"`
	RegistrationDate time.Time `gorm:"type:date" json:"registration_date"`
	Status           string    `gorm:"size:32;not null;default:active;index" json:"status"`
	MemorizedSurahs  int       `gorm:"not null;default:0" json:"memorized_surahs"`
	DailyAmount      string    `gorm:"size:32" json:"daily_amount"`
	Notes            string    `gorm:"type:text" json:"notes"`
	ActionReason     string    `gorm:"type:text" json:"action_reason"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsActiveStatus reports whether a status keeps the student on the active
// roster. Long-absent students remain on the roster; expelled and deleted
// students do not.
func IsActiveStatus(status string) bool {
	return status == StudentStatusActive || status == StudentStatusLongAbsent
}

// ActiveStatuses lists the statuses included in active-roster queries.
func ActiveStatuses() []string {
	return []string{StudentStatusActive, StudentStatusLongAbsent}
}

// ValidStudentStatus reports whether the value is a known lifecycle status.
func ValidStudentStatus(status string) bool {
	switch status {
	case StudentStatusActive, StudentStatusLongAbsent, StudentStatusExpelled, StudentStatusDeleted:
		return true
	default:
		return false
	}
}
