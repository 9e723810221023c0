package dto

import "time"

// Rating labels produced by the group performance evaluator.
const (
	RatingExcellent = "excellent"
	RatingVeryGood  = "very_good"
	RatingGood      = "good"
	RatingWeak      = "weak"
	RatingNoData    = "no_data"
)

// EvaluationInputs are the aggregate counts the rubric is applied to.
type EvaluationInputs struct {
	AttendanceRate   float64 `json:"attendance_rate"`
	AverageProgress  float64 `json:"average_progress"`
	ReportsThisMonth int     `json:"reports_this_month"`
	Complaints       int     `json:"complaints"`
	InactiveStudents int     `json:"inactive_students"`
	SessionCount     int     `json:"session_count"`
}

// EvaluationResponse is the monthly group performance verdict. Score is
// null when no activity was recorded at all.
type EvaluationResponse struct {
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Score       *int             `json:"score"`
	Rating      string           `json:"rating"`
	Suggestions []string         `json:"suggestions"`
	Inputs      EvaluationInputs `json:"inputs"`
	GeneratedAt time.Time        `json:"generated_at"`
}
